package record

import "fmt"

// requiredRootElements are the top-level children a ReSpecTh document must
// expose before decoding is worthwhile.
var requiredRootElements = []string{"experimentType", "apparatus", "commonProperties"}

// Validate performs the structural pre-parse check on a document. It returns
// ok=false with one human-readable message per problem when a required
// top-level element is missing or when no dataGroup element exists anywhere
// in the document. A document that is not well-formed XML yields a single
// message describing the parse failure; Validate never returns an error.
//
// Validation is advisory gating for Decode: callers are expected to validate
// first and abort on failure, and Decode does not re-validate.
func Validate(data []byte) (bool, []string) {
	root, err := parseDocument(data)
	if err != nil {
		return false, []string{fmt.Sprintf("XML parse error: %v", err)}
	}

	var errs []string
	for _, name := range requiredRootElements {
		if root.child(name) == nil {
			errs = append(errs, fmt.Sprintf("missing required element: %s", name))
		}
	}

	if len(root.findAll("dataGroup")) == 0 {
		errs = append(errs, "no data groups found")
	}

	return len(errs) == 0, errs
}
