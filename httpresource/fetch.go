package httpresource

import (
	"context"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"

	"github.com/kbukum/resourcekit/errors"
	"github.com/kbukum/resourcekit/logger"
	"github.com/kbukum/resourcekit/resource"
)

// fetch resolves the descriptor URI and GETs it.
func (p *Provider) fetch(ctx context.Context, d resource.Descriptor, params resource.Params) (string, error) {
	target := d.URI
	if len(params) > 0 {
		validated, err := p.ValidateParameters(d, params)
		if err != nil {
			return "", err
		}
		target = p.SubstituteParameters(target, validated)
	}

	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		return "", errors.InvalidTarget(target).WithDetail("resource", d.Name)
	}

	log := p.log.WithContext(ctx)
	log.Debug("fetching resource", logger.Fields(
		logger.FieldProvider, p.Name(),
		logger.FieldResource, d.Name,
		logger.FieldURL, target,
	))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", errors.Unexpected(target, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", errors.Timeout("fetch "+d.Name).WithDetail("url", target).WithCause(err)
		}
		return "", errors.Transport(target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Warn("upstream returned non-200 status", logger.Fields(
			logger.FieldResource, d.Name,
			logger.FieldURL, target,
			logger.FieldStatus, resp.StatusCode,
		))
		return "", errors.UpstreamStatus(resp.StatusCode, target)
	}

	body, err := readBody(resp)
	if err != nil {
		return "", errors.Unexpected(target, err)
	}
	return body, nil
}

// readBody returns the body as text. Bodies declaring a non-UTF-8 charset
// are decoded; everything else is returned byte for byte.
func readBody(resp *http.Response) (string, error) {
	var r io.Reader = resp.Body
	if enc := declaredEncoding(resp.Header.Get("Content-Type")); enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// declaredEncoding returns the decoder for a non-UTF-8 charset declared in
// the Content-Type header, or nil.
func declaredEncoding(contentType string) encoding.Encoding {
	if contentType == "" {
		return nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil
	}
	label := params["charset"]
	if label == "" {
		return nil
	}
	enc, name := charset.Lookup(label)
	if enc == nil || name == "utf-8" {
		return nil
	}
	return enc
}
