// # internal/structure/java.go
package structure

import (
	"path/filepath"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// JavaExtractor converts a parsed compilation unit into the file's type
// declarations. One walk, top down; the enclosing namespace travels as a
// parameter instead of re-scanning the tree per node.
type JavaExtractor struct{}

func (e *JavaExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path: filePath,
		Name: filepath.Base(filePath),
	}

	x := &javaExtraction{source: source, file: file}

	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		switch child.Kind() {
		case "package_declaration":
			file.Package = x.packageName(child)
		case "import_declaration":
			file.Imports = append(file.Imports, x.renderImport(child))
		case "class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration":
			file.Types = append(file.Types, x.extractType(child, file.Package))
			x.drainLocals()
		}
	}

	file.Parsed = true
	return file, nil
}

type javaExtraction struct {
	source []byte
	file   *File
	locals []*sitter.Node
}

// drainLocals extracts queued type declarations that were found inside member
// bodies. They are not members of the enclosing type, so they are reported as
// further top-level declarations in the file's package.
func (x *javaExtraction) drainLocals() {
	for len(x.locals) > 0 {
		node := x.locals[0]
		x.locals = x.locals[1:]
		x.file.Types = append(x.file.Types, x.extractType(node, x.file.Package))
	}
}

func (x *javaExtraction) extractType(node *sitter.Node, namespace string) *TypeDeclaration {
	name := x.text(node.ChildByFieldName("name"))
	decl := &TypeDeclaration{
		Name:          name,
		FullName:      qualify(namespace, name),
		Kind:          typeKindOf(node.Kind()),
		Documentation: javadocFor(node, x.source).Description,
		StartLine:     int(node.StartPosition().Row) + 1,
		EndLine:       int(node.EndPosition().Row) + 1,
	}
	decl.Modifiers, decl.Annotations = x.modifiers(node)

	// Supertypes and type parameters only exist on class-or-interface
	// declarations.
	switch node.Kind() {
	case "class_declaration":
		decl.SuperClass = x.extendsTarget(node)
		decl.Interfaces = x.implementsTargets(node)
		decl.TypeParams = x.typeParams(node)
	case "interface_declaration":
		decl.SuperClass = x.extendsTarget(node)
		decl.TypeParams = x.typeParams(node)
	}

	if body := node.ChildByFieldName("body"); body != nil {
		x.extractMembers(body, decl)
	}
	return decl
}

func (x *javaExtraction) extractMembers(body *sitter.Node, decl *TypeDeclaration) {
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		switch child.Kind() {
		case "field_declaration", "constant_declaration":
			decl.Fields = append(decl.Fields, x.extractFields(child)...)
		case "method_declaration":
			decl.Methods = append(decl.Methods, x.extractCallable(child, false))
		case "constructor_declaration":
			decl.Methods = append(decl.Methods, x.extractCallable(child, true))
		case "class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration":
			decl.Nested = append(decl.Nested, x.extractType(child, decl.FullName))
		case "enum_body_declarations":
			x.extractMembers(child, decl)
		default:
			x.findLocalTypes(child)
		}
	}
}

// extractFields splits one field declaration into one Field per declared
// variable. Type, modifiers and documentation are shared; name, initializer
// and line are per variable.
func (x *javaExtraction) extractFields(node *sitter.Node) []Field {
	sharedType := x.text(node.ChildByFieldName("type"))
	mods, _ := x.modifiers(node)
	doc := javadocFor(node, x.source).Description

	var out []Field
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() != "variable_declarator" {
			continue
		}
		f := Field{
			Name:          x.text(child.ChildByFieldName("name")),
			Type:          sharedType,
			Modifiers:     mods,
			Documentation: doc,
			Line:          int(child.StartPosition().Row) + 1,
		}
		if value := child.ChildByFieldName("value"); value != nil {
			f.Initializer = x.text(value)
			x.findLocalTypes(value)
		}
		out = append(out, f)
	}
	return out
}

func (x *javaExtraction) extractCallable(node *sitter.Node, constructor bool) Method {
	doc := javadocFor(node, x.source)
	m := Method{
		Name:          x.text(node.ChildByFieldName("name")),
		Documentation: doc.Description,
		ReturnDoc:     doc.Return,
		IsConstructor: constructor,
		StartLine:     int(node.StartPosition().Row) + 1,
		EndLine:       int(node.EndPosition().Row) + 1,
	}
	if !constructor {
		m.ReturnType = x.text(node.ChildByFieldName("type"))
	}
	m.Modifiers, m.Annotations = x.modifiers(node)
	m.Throws = x.throwsList(node)
	m.Parameters = x.parameters(node.ChildByFieldName("parameters"), doc)

	if body := node.ChildByFieldName("body"); body != nil {
		x.findLocalTypes(body)
	}
	return m
}

func (x *javaExtraction) parameters(list *sitter.Node, doc docComment) []Parameter {
	if list == nil {
		return nil
	}
	var out []Parameter
	for i := uint(0); i < list.ChildCount(); i++ {
		child := list.Child(i)
		var p Parameter
		switch child.Kind() {
		case "formal_parameter":
			p.Name = x.text(child.ChildByFieldName("name"))
			p.Type = x.text(child.ChildByFieldName("type"))
		case "spread_parameter":
			p.Variadic = true
			for j := uint(0); j < child.ChildCount(); j++ {
				part := child.Child(j)
				switch part.Kind() {
				case "modifiers", "...":
				case "variable_declarator":
					p.Name = x.text(part.ChildByFieldName("name"))
				default:
					if p.Type == "" {
						p.Type = x.text(part)
					}
				}
			}
		default:
			continue
		}
		p.Final = x.hasFinal(child)
		// Parameter documentation binds by name; an unmatched tag binds
		// nothing.
		if d, ok := doc.Params[p.Name]; ok {
			p.Documentation = d
		}
		out = append(out, p)
	}
	return out
}

// findLocalTypes queues type declarations nested inside statements or
// expressions, e.g. classes local to a method body or declared in an
// anonymous class body.
func (x *javaExtraction) findLocalTypes(node *sitter.Node) {
	switch node.Kind() {
	case "class_declaration", "interface_declaration", "enum_declaration",
		"record_declaration", "annotation_type_declaration":
		x.locals = append(x.locals, node)
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		x.findLocalTypes(node.Child(i))
	}
}

// modifiers returns the declaration's modifier keywords and its annotations
// ("@" plus the annotation name, arguments dropped) in source order.
func (x *javaExtraction) modifiers(node *sitter.Node) ([]string, []string) {
	mods := x.findChild(node, "modifiers")
	if mods == nil {
		return nil, nil
	}
	var keywords, annotations []string
	for i := uint(0); i < mods.ChildCount(); i++ {
		child := mods.Child(i)
		switch child.Kind() {
		case "marker_annotation", "annotation":
			annotations = append(annotations, "@"+x.text(child.ChildByFieldName("name")))
		default:
			keywords = append(keywords, x.text(child))
		}
	}
	return keywords, annotations
}

func (x *javaExtraction) hasFinal(node *sitter.Node) bool {
	keywords, _ := x.modifiers(node)
	for _, kw := range keywords {
		if kw == "final" {
			return true
		}
	}
	return false
}

func (x *javaExtraction) extendsTarget(node *sitter.Node) string {
	if sc := node.ChildByFieldName("superclass"); sc != nil {
		for i := uint(0); i < sc.ChildCount(); i++ {
			child := sc.Child(i)
			if child.Kind() != "extends" {
				return x.text(child)
			}
		}
	}

	// Interfaces list parents in an extends_interfaces clause. The
	// declaration keeps a single supertype slot, so the last entry wins.
	target := ""
	if ext := x.findChild(node, "extends_interfaces"); ext != nil {
		if list := x.findChild(ext, "type_list"); list != nil {
			for i := uint(0); i < list.ChildCount(); i++ {
				item := list.Child(i)
				if item.Kind() != "," {
					target = x.text(item)
				}
			}
		}
	}
	return target
}

func (x *javaExtraction) implementsTargets(node *sitter.Node) []string {
	si := node.ChildByFieldName("interfaces")
	if si == nil {
		return nil
	}
	list := x.findChild(si, "type_list")
	if list == nil {
		return nil
	}
	var out []string
	for i := uint(0); i < list.ChildCount(); i++ {
		item := list.Child(i)
		if item.Kind() != "," {
			out = append(out, x.text(item))
		}
	}
	return out
}

// typeParams keeps each parameter's full declared form, bounds included.
func (x *javaExtraction) typeParams(node *sitter.Node) []string {
	tp := node.ChildByFieldName("type_parameters")
	if tp == nil {
		return nil
	}
	var out []string
	for i := uint(0); i < tp.ChildCount(); i++ {
		child := tp.Child(i)
		if child.Kind() == "type_parameter" {
			out = append(out, x.text(child))
		}
	}
	return out
}

func (x *javaExtraction) throwsList(node *sitter.Node) []string {
	th := x.findChild(node, "throws")
	if th == nil {
		return nil
	}
	var out []string
	for i := uint(0); i < th.ChildCount(); i++ {
		child := th.Child(i)
		if child.Kind() != "throws" && child.Kind() != "," {
			out = append(out, x.text(child))
		}
	}
	return out
}

func (x *javaExtraction) packageName(node *sitter.Node) string {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "scoped_identifier" || child.Kind() == "identifier" {
			return x.text(child)
		}
	}
	return ""
}

// renderImport passes the import through as a plain string: wildcard imports
// get a ".*" suffix, static imports a "static " prefix.
func (x *javaExtraction) renderImport(node *sitter.Node) string {
	name := ""
	isStatic := false
	isWildcard := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "scoped_identifier", "identifier":
			name = x.text(child)
		case "static":
			isStatic = true
		case "asterisk":
			isWildcard = true
		}
	}
	if isWildcard {
		name += ".*"
	}
	if isStatic {
		name = "static " + name
	}
	return name
}

func (x *javaExtraction) findChild(node *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

func (x *javaExtraction) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(x.source[node.StartByte():node.EndByte()])
}

func typeKindOf(kind string) TypeKind {
	switch kind {
	case "interface_declaration":
		return KindInterface
	case "enum_declaration":
		return KindEnum
	case "record_declaration":
		return KindRecord
	case "annotation_type_declaration":
		return KindAnnotation
	default:
		return KindClass
	}
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}
