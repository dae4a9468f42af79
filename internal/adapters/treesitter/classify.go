package treesitter

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cursorcult/uno/internal/ports"
)

// classify dispatches to language-specific or table-driven classification.
// Only definitions whose enclosing scope is the file's top level are
// returned; a function inside a function, or anything inside a class body,
// is not a definition of the file.
func classify(root *tree_sitter.Node, source []byte, lang string) []ports.Def {
	switch lang {
	case "go":
		return classifyGo(root, source)
	case "python":
		return classifyPython(root, source)
	case "javascript", "typescript", "tsx":
		return classifyJavaScript(root, source)
	default:
		return classifyGeneric(root, source, lang)
	}
}

// defRules maps language names to the node kinds that constitute top-level
// definitions. The data-driven path for languages without special handling.
var defRules = map[string]map[string]string{
	"ruby": {
		"method": ports.KindFunction,
		"class":  ports.KindClass,
		"module": ports.KindClass,
	},
	"rust": {
		"function_item": ports.KindFunction,
		"struct_item":   ports.KindClass,
		"enum_item":     ports.KindClass,
		"trait_item":    ports.KindClass,
		"union_item":    ports.KindClass,
	},
	"java": {
		"class_declaration":      ports.KindClass,
		"interface_declaration":  ports.KindClass,
		"enum_declaration":       ports.KindClass,
		"record_declaration":     ports.KindClass,
		"annotation_declaration": ports.KindClass,
	},
	"c_sharp": {
		"class_declaration":     ports.KindClass,
		"struct_declaration":    ports.KindClass,
		"interface_declaration": ports.KindClass,
		"record_declaration":    ports.KindClass,
		"enum_declaration":      ports.KindClass,
	},
	"php": {
		"function_definition":   ports.KindFunction,
		"class_declaration":     ports.KindClass,
		"interface_declaration": ports.KindClass,
		"trait_declaration":     ports.KindClass,
		"enum_declaration":      ports.KindClass,
	},
	"kotlin": {
		"function_declaration": ports.KindFunction,
		"class_declaration":    ports.KindClass,
		"object_declaration":   ports.KindClass,
	},
	"lua": {
		"function_declaration": ports.KindFunction,
	},
	"bash": {
		"function_definition": ports.KindFunction,
	},
}

// containerKinds are transparent wrappers whose children still count as
// top-level: a C# namespace body, a PHP <?php program section. Containers
// unwrap; definition bodies never do.
var containerKinds = map[string]map[string]bool{
	"c_sharp": {
		"namespace_declaration":             true,
		"file_scoped_namespace_declaration": true,
		"declaration_list":                  true,
	},
	"php": {
		"namespace_definition": true,
		"declaration_list":     true,
	},
}

func classifyGeneric(root *tree_sitter.Node, source []byte, lang string) []ports.Def {
	rules, ok := defRules[lang]
	if !ok {
		return nil
	}
	containers := containerKinds[lang]

	var defs []ports.Def
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		for i := uint(0); i < uint(n.ChildCount()); i++ {
			child := n.Child(i)
			kind := child.Kind()
			if defKind, isDef := rules[kind]; isDef {
				if name := declaredName(child, source); name != "" {
					defs = append(defs, makeDef(defKind, name, child))
				}
				continue // never descend into a definition body
			}
			if containers[kind] {
				walk(child)
			}
		}
	}
	walk(root)
	return defs
}

// declaredName finds the identifier bound by a definition. The declared
// name only — never an inferred or decorated alias.
func declaredName(n *tree_sitter.Node, source []byte) string {
	nameKinds := []string{"identifier", "name", "constant", "type_identifier", "simple_identifier", "word"}
	for _, kind := range nameKinds {
		if c := childByKind(n, kind); c != nil {
			return nodeText(c, source)
		}
	}
	return ""
}

func makeDef(kind, name string, n *tree_sitter.Node) ports.Def {
	return ports.Def{
		Kind: kind,
		Name: name,
		Line: int(n.StartPosition().Row) + 1,
	}
}

// nodeText returns the source text for a node.
func nodeText(n *tree_sitter.Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}

// childByKind finds the first child with the given kind.
func childByKind(n *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// ---------- Go classification ----------

// Top-level Go definitions: functions and methods count as functions, named
// struct/interface types count as classes. Aliases and primitive type
// definitions do not.
func classifyGo(root *tree_sitter.Node, source []byte) []ports.Def {
	var defs []ports.Def
	for i := uint(0); i < uint(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Kind() {
		case "function_declaration":
			if id := childByKind(child, "identifier"); id != nil {
				defs = append(defs, makeDef(ports.KindFunction, nodeText(id, source), child))
			}
		case "method_declaration":
			if id := childByKind(child, "field_identifier"); id != nil {
				defs = append(defs, makeDef(ports.KindFunction, nodeText(id, source), child))
			}
		case "type_declaration":
			for j := uint(0); j < uint(child.ChildCount()); j++ {
				spec := child.Child(j)
				if spec.Kind() != "type_spec" {
					continue
				}
				if childByKind(spec, "struct_type") == nil && childByKind(spec, "interface_type") == nil {
					continue
				}
				if id := childByKind(spec, "type_identifier"); id != nil {
					defs = append(defs, makeDef(ports.KindClass, nodeText(id, source), child))
				}
			}
		}
	}
	return defs
}

// ---------- Python classification ----------

// Decorated definitions unwrap to the inner def/class: the decorator does
// not change what is declared, and the name is the declared identifier, not
// whatever the decorator returns.
func classifyPython(root *tree_sitter.Node, source []byte) []ports.Def {
	var defs []ports.Def
	for i := uint(0); i < uint(root.ChildCount()); i++ {
		child := root.Child(i)
		kind := child.Kind()

		if kind == "decorated_definition" {
			for j := uint(0); j < uint(child.ChildCount()); j++ {
				inner := child.Child(j)
				if k := inner.Kind(); k == "function_definition" || k == "class_definition" {
					child, kind = inner, k
					break
				}
			}
		}

		switch kind {
		case "function_definition":
			if id := childByKind(child, "identifier"); id != nil {
				defs = append(defs, makeDef(ports.KindFunction, nodeText(id, source), child))
			}
		case "class_definition":
			if id := childByKind(child, "identifier"); id != nil {
				defs = append(defs, makeDef(ports.KindClass, nodeText(id, source), child))
			}
		}
	}
	return defs
}

// ---------- JavaScript / TypeScript classification ----------

// export statements unwrap to the declaration they export. const/let
// bindings whose value is a function expression or arrow function count as
// function definitions.
func classifyJavaScript(root *tree_sitter.Node, source []byte) []ports.Def {
	var defs []ports.Def
	for i := uint(0); i < uint(root.ChildCount()); i++ {
		child := root.Child(i)
		if child.Kind() == "export_statement" {
			for j := uint(0); j < uint(child.ChildCount()); j++ {
				defs = append(defs, classifyJSNode(child.Child(j), source)...)
			}
			continue
		}
		defs = append(defs, classifyJSNode(child, source)...)
	}
	return defs
}

func classifyJSNode(n *tree_sitter.Node, source []byte) []ports.Def {
	switch n.Kind() {
	case "function_declaration", "generator_function_declaration":
		if id := childByKind(n, "identifier"); id != nil {
			return []ports.Def{makeDef(ports.KindFunction, nodeText(id, source), n)}
		}
	case "class_declaration", "abstract_class_declaration":
		if id := childByKind(n, "type_identifier"); id != nil {
			return []ports.Def{makeDef(ports.KindClass, nodeText(id, source), n)}
		}
		if id := childByKind(n, "identifier"); id != nil {
			return []ports.Def{makeDef(ports.KindClass, nodeText(id, source), n)}
		}
	case "lexical_declaration", "variable_declaration":
		return classifyJSBindings(n, source)
	}
	return nil
}

func classifyJSBindings(n *tree_sitter.Node, source []byte) []ports.Def {
	var defs []ports.Def
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		decl := n.Child(i)
		if decl.Kind() != "variable_declarator" {
			continue
		}
		id := childByKind(decl, "identifier")
		if id == nil {
			continue
		}
		for j := uint(0); j < uint(decl.ChildCount()); j++ {
			val := decl.Child(j)
			if k := val.Kind(); k == "arrow_function" || k == "function_expression" || k == "function" {
				defs = append(defs, makeDef(ports.KindFunction, nodeText(id, source), n))
				break
			}
		}
	}
	return defs
}
