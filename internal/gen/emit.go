package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"
)

// atomkitPath is the import path of the runtime library the generated
// code binds against.
const atomkitPath = "github.com/roach88/atomkit"

type fileData struct {
	Header  string
	Package string
	Import  string
	Targets []*Target
}

var fileTmpl = template.Must(template.New("atoms").Parse(`{{.Header}}

package {{.Package}}

import (
	"{{.Import}}"
)
{{range .Targets}}
// Pack implements atomkit.Atom for {{.Name}}.
func (v {{.Name}}) Pack() atomkit.{{.Repr}} {
	return {{.PackExpr}}
}
{{if .Variants}}
// Unpack implements atomkit.Atom for {{.Name}}. It panics with an
// *atomkit.Fault if src matches no declared {{.Name}} constant.
func ({{.Name}}) Unpack(src atomkit.{{.Repr}}) {{.Name}} {
	c := {{.Name}}(src)
	{{- range .Variants}}
	if c == {{.}} {
		return {{.}}
	}
	{{- end}}
	panic(&atomkit.Fault{
		Code:    atomkit.FaultInvalidDiscriminant,
		Type:    "{{.Name}}",
		Bits:    uint64(src),
		Message: "bit pattern matches no declared {{.Name}} constant",
	})
}
{{else}}
// Unpack implements atomkit.Atom for {{.Name}}.
func ({{.Name}}) Unpack(src atomkit.{{.Repr}}) {{.Name}} {
	{{- if .UnpackSetup}}
	{{.UnpackSetup}}
	{{- end}}
	return {{.UnpackExpr}}
}
{{end}}
{{- if .Logic}}
// AtomLogic marks {{.Name}} as supporting bitwise fetch operations.
func ({{.Name}}) AtomLogic() {}
{{end}}
{{- if .Integer}}
// AtomInteger marks {{.Name}} as supporting integer fetch operations.
func ({{.Name}}) AtomInteger() {}
{{end}}
// {{.CtorName}} returns an atomic container holding v.
func {{.CtorName}}(v {{.Name}}) *atomkit.Atomic[{{.Name}}, atomkit.{{.Repr}}] {
	return atomkit.New[{{.Name}}, atomkit.{{.Repr}}](v)
}
{{end}}`))

// Emit renders the generated source for the package's targets and runs it
// through go/format so the output is byte-identical to gofmt.
func Emit(pkgName string, targets []*Target) ([]byte, error) {
	var buf bytes.Buffer
	err := fileTmpl.Execute(&buf, fileData{
		Header:  generatedHeader,
		Package: pkgName,
		Import:  atomkitPath,
		Targets: targets,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering generated code: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return src, nil
}
