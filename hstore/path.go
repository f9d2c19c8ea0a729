package hstore

import (
	"fmt"
	"path"
	"strings"
)

// ParseAttrPath parses an attribute path into object path and attribute name.
// Path format: /group/subgroup/object@attribute_name
//
// Examples:
//   - "/@root_attr" -> objectPath="/", attrName="root_attr"
//   - "/data@units" -> objectPath="/data", attrName="units"
//   - "/sensors/temp@calibration" -> objectPath="/sensors/temp", attrName="calibration"
func ParseAttrPath(p string) (objectPath, attrName string, err error) {
	if p == "" {
		return "", "", fmt.Errorf("%w: empty attribute path", ErrInvalidPath)
	}

	atIdx := strings.LastIndex(p, "@")
	if atIdx == -1 {
		return "", "", fmt.Errorf("%w: attribute path must contain '@' separator: %s", ErrInvalidPath, p)
	}

	objectPath = p[:atIdx]
	attrName = p[atIdx+1:]
	if attrName == "" {
		return "", "", fmt.Errorf("%w: attribute name cannot be empty: %s", ErrInvalidPath, p)
	}

	return CleanPath(objectPath), attrName, nil
}

// JoinAttrPath creates an attribute path from object path and attribute name.
func JoinAttrPath(objectPath, attrName string) string {
	if objectPath == "/" {
		return "/@" + attrName
	}
	return objectPath + "@" + attrName
}

// SplitPath splits a path into its components.
// Leading and trailing slashes are handled, empty components are removed.
//
// Examples:
//   - "/" -> []string{}
//   - "/foo" -> []string{"foo"}
//   - "/foo//bar/" -> []string{"foo", "bar"}
func SplitPath(p string) []string {
	parts := []string{}
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

// CleanPath normalizes a path, ensuring it starts with "/" and has no trailing slash.
func CleanPath(p string) string {
	parts := SplitPath(p)
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

// JoinPath joins a group path and a member name.
func JoinPath(groupPath, name string) string {
	return CleanPath(path.Join(groupPath, name))
}

// validName reports whether name may be used as a member name.
func validName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: invalid member name %q", ErrInvalidPath, name)
	case strings.ContainsAny(name, "/@"):
		return fmt.Errorf("%w: member name %q must not contain '/' or '@'", ErrInvalidPath, name)
	case name[0] == 0:
		return fmt.Errorf("%w: member name must not start with NUL", ErrInvalidPath)
	}
	return nil
}
