// Package resource defines the declarative model shared by resource
// providers: descriptors with URI templates and parameter schemas, the
// definitions advertised to a host framework, and the Resource capability
// every provider implements.
//
// A provider owns an ordered, immutable Set of descriptors built from a
// configuration payload:
//
//	name: http_resources
//	description: Public HTTP resource types
//	params:
//	  resources:
//	    - name: item
//	      type: json
//	      access: public
//	      uri: https://api.example.com/items/{id}
//	      resource_parameters:
//	        - name: id
//	          description: Item identifier
//
// Placeholders of the form {name} are replaced with parameter values in a
// single left-to-right scan; substituted values are never rescanned.
package resource
