// # internal/structure/types.go
package structure

import (
	"fmt"
	"strings"
	"time"
)

type TypeKind string

const (
	KindClass      TypeKind = "class"
	KindInterface  TypeKind = "interface"
	KindEnum       TypeKind = "enum"
	KindRecord     TypeKind = "record"
	KindAnnotation TypeKind = "annotation"
)

type File struct {
	Path       string             `json:"path"`
	Name       string             `json:"name"`
	Package    string             `json:"package,omitempty"`
	Imports    []string           `json:"imports,omitempty"`
	Types      []*TypeDeclaration `json:"types,omitempty"`
	LineCount  int                `json:"line_count"`
	Size       int64              `json:"size,omitempty"`
	ModTime    time.Time          `json:"mod_time,omitempty"`
	Parsed     bool               `json:"parsed"`
	ParseError string             `json:"parse_error,omitempty"`
}

type TypeDeclaration struct {
	Name          string             `json:"name"`
	FullName      string             `json:"full_name"`
	Kind          TypeKind           `json:"kind"`
	Modifiers     []string           `json:"modifiers,omitempty"`
	Annotations   []string           `json:"annotations,omitempty"`
	SuperClass    string             `json:"super_class,omitempty"`
	Interfaces    []string           `json:"interfaces,omitempty"`
	TypeParams    []string           `json:"type_params,omitempty"`
	Documentation string             `json:"documentation,omitempty"`
	StartLine     int                `json:"start_line"`
	EndLine       int                `json:"end_line"`
	Fields        []Field            `json:"fields,omitempty"`
	Methods       []Method           `json:"methods,omitempty"`
	Nested        []*TypeDeclaration `json:"nested,omitempty"`
}

type Field struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Modifiers     []string `json:"modifiers,omitempty"`
	Initializer   string   `json:"initializer,omitempty"`
	Documentation string   `json:"documentation,omitempty"`
	Line          int      `json:"line"`
}

type Method struct {
	Name          string      `json:"name"`
	ReturnType    string      `json:"return_type,omitempty"` // empty for constructors
	Parameters    []Parameter `json:"parameters,omitempty"`
	Modifiers     []string    `json:"modifiers,omitempty"`
	Throws        []string    `json:"throws,omitempty"`
	Annotations   []string    `json:"annotations,omitempty"`
	Documentation string      `json:"documentation,omitempty"`
	ReturnDoc     string      `json:"return_doc,omitempty"`
	IsConstructor bool        `json:"is_constructor,omitempty"`
	StartLine     int         `json:"start_line"`
	EndLine       int         `json:"end_line"`
}

type Parameter struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Final         bool   `json:"final,omitempty"`
	Variadic      bool   `json:"variadic,omitempty"`
	Documentation string `json:"documentation,omitempty"`
}

// FlattenTypes returns every type declaration in the file, nested ones
// included, in declaration order.
func (f *File) FlattenTypes() []*TypeDeclaration {
	var out []*TypeDeclaration
	var walk func(decls []*TypeDeclaration)
	walk = func(decls []*TypeDeclaration) {
		for _, d := range decls {
			out = append(out, d)
			walk(d.Nested)
		}
	}
	walk(f.Types)
	return out
}

func (f *File) MethodCount() int {
	n := 0
	for _, t := range f.FlattenTypes() {
		n += len(t.Methods)
	}
	return n
}

func (f *File) FieldCount() int {
	n := 0
	for _, t := range f.FlattenTypes() {
		n += len(t.Fields)
	}
	return n
}

// Signature renders the declaration header, e.g.
// "public abstract class Shape<T> extends Base implements Drawable, Serializable".
func (t *TypeDeclaration) Signature() string {
	var b strings.Builder
	if len(t.Modifiers) > 0 {
		b.WriteString(strings.Join(t.Modifiers, " "))
		b.WriteString(" ")
	}
	b.WriteString(string(t.Kind))
	b.WriteString(" ")
	b.WriteString(t.Name)
	if len(t.TypeParams) > 0 {
		b.WriteString("<")
		b.WriteString(strings.Join(t.TypeParams, ", "))
		b.WriteString(">")
	}
	if t.SuperClass != "" {
		b.WriteString(" extends ")
		b.WriteString(t.SuperClass)
	}
	if len(t.Interfaces) > 0 {
		b.WriteString(" implements ")
		b.WriteString(strings.Join(t.Interfaces, ", "))
	}
	return b.String()
}

// LineSpan is the inclusive number of source lines the declaration covers.
func (t *TypeDeclaration) LineSpan() int {
	if t.StartLine == 0 || t.EndLine == 0 || t.EndLine < t.StartLine {
		return 0
	}
	return t.EndLine - t.StartLine + 1
}

func (t *TypeDeclaration) Constructors() []Method {
	var out []Method
	for _, m := range t.Methods {
		if m.IsConstructor {
			out = append(out, m)
		}
	}
	return out
}

func (t *TypeDeclaration) NonConstructorMethods() []Method {
	var out []Method
	for _, m := range t.Methods {
		if !m.IsConstructor {
			out = append(out, m)
		}
	}
	return out
}

func (t *TypeDeclaration) PublicMethods() []Method {
	var out []Method
	for _, m := range t.Methods {
		if m.Visibility() == "public" {
			out = append(out, m)
		}
	}
	return out
}

func (t *TypeDeclaration) PublicFields() []Field {
	var out []Field
	for _, f := range t.Fields {
		if visibility(f.Modifiers) == "public" {
			out = append(out, f)
		}
	}
	return out
}

func (t *TypeDeclaration) Visibility() string {
	return visibility(t.Modifiers)
}

func (f *Field) Visibility() string {
	return visibility(f.Modifiers)
}

func (f *Field) Signature() string {
	var b strings.Builder
	if len(f.Modifiers) > 0 {
		b.WriteString(strings.Join(f.Modifiers, " "))
		b.WriteString(" ")
	}
	b.WriteString(f.Type)
	b.WriteString(" ")
	b.WriteString(f.Name)
	if f.Initializer != "" {
		b.WriteString(" = ")
		b.WriteString(f.Initializer)
	}
	return b.String()
}

func (m *Method) Visibility() string {
	return visibility(m.Modifiers)
}

// Signature renders the full method header including modifiers, return type,
// parameters and throws clause.
func (m *Method) Signature() string {
	var b strings.Builder
	if len(m.Modifiers) > 0 {
		b.WriteString(strings.Join(m.Modifiers, " "))
		b.WriteString(" ")
	}
	if m.ReturnType != "" {
		b.WriteString(m.ReturnType)
		b.WriteString(" ")
	}
	b.WriteString(m.Name)
	b.WriteString("(")
	params := make([]string, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		params = append(params, fmt.Sprintf("%s %s", p.FullType(), p.Name))
	}
	b.WriteString(strings.Join(params, ", "))
	b.WriteString(")")
	if len(m.Throws) > 0 {
		b.WriteString(" throws ")
		b.WriteString(strings.Join(m.Throws, ", "))
	}
	return b.String()
}

// ShortSignature renders "name(Type1, Type2)" without parameter names.
func (m *Method) ShortSignature() string {
	types := make([]string, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		types = append(types, p.FullType())
	}
	return fmt.Sprintf("%s(%s)", m.Name, strings.Join(types, ", "))
}

// FullType appends the variadic marker when the parameter is a vararg.
func (p *Parameter) FullType() string {
	if p.Variadic {
		return p.Type + "..."
	}
	return p.Type
}

func visibility(modifiers []string) string {
	for _, m := range modifiers {
		switch m {
		case "public", "protected", "private":
			return m
		}
	}
	return "package-private"
}
