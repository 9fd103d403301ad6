package gputest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bloeys/glsltri/gpu"
)

var (
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	mainRe         = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void)?\s*\)`)
	declRe         = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:(?:flat|smooth|noperspective)\s+)?(in|out|uniform)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*\d*\s*\])?\s*;`)
)

type decl struct {
	qualifier string
	typ       string
	name      string
}

func stripComments(src string) string {
	src = blockCommentRe.ReplaceAllString(src, "")
	return lineCommentRe.ReplaceAllString(src, "")
}

func declarations(src string) []decl {

	matches := declRe.FindAllStringSubmatch(stripComments(src), -1)
	decls := make([]decl, 0, len(matches))
	for _, m := range matches {
		decls = append(decls, decl{qualifier: m[1], typ: m[2], name: m[3]})
	}

	return decls
}

// CheckSource is a very small stand-in for a GLSL compiler. It rejects
// sources without a main function, with unbalanced braces or parentheses, or
// with an #error directive, and reports it the way desktop drivers do.
func CheckSource(kind gpu.Enum, src string) string {

	code := stripComments(src)

	if i := strings.Index(code, "#error"); i != -1 {
		return fmt.Sprintf("ERROR: 0:%d: '#error' : %s\n", lineOf(code, i), strings.TrimSpace(restOfLine(code[i+len("#error"):])))
	}

	depth := 0
	parens := 0
	for i, r := range code {

		switch r {
		case '{':
			depth++
		case '}':
			depth--
		case '(':
			parens++
		case ')':
			parens--
		}

		if depth < 0 {
			return fmt.Sprintf("ERROR: 0:%d: '}' : syntax error: unexpected '}'\n", lineOf(code, i))
		}

		if parens < 0 {
			return fmt.Sprintf("ERROR: 0:%d: ')' : syntax error: unexpected ')'\n", lineOf(code, i))
		}
	}

	if depth != 0 || parens != 0 {
		return fmt.Sprintf("ERROR: 0:%d: '' : syntax error: unexpected end of file\n", lineOf(code, len(code)))
	}

	if !mainRe.MatchString(code) {
		return "ERROR: 0:1: 'main' : function not defined in " + stageName(kind) + " shader\n"
	}

	return ""
}

// CheckInterface links stages when every compiled stage is present at most
// once, a vertex and a fragment stage exist, and every fragment input matches
// a vertex output of the same type.
func CheckInterface(stages []*Shader) string {

	var vert, frag *Shader
	seen := map[gpu.Enum]bool{}
	for _, s := range stages {

		if !s.Compiled {
			return fmt.Sprintf("error: linking with uncompiled/unspecialized shader %d\n", s.Id)
		}

		if seen[s.Kind] {
			return fmt.Sprintf("error: more than one %s shader attached\n", stageName(s.Kind))
		}
		seen[s.Kind] = true

		switch s.Kind {
		case gpu.VertexShader:
			vert = s
		case gpu.FragmentShader:
			frag = s
		}
	}

	if vert == nil {
		return "error: no vertex shader attached\n"
	}

	if frag == nil {
		return "error: no fragment shader attached\n"
	}

	outs := map[string]string{}
	for _, d := range declarations(vert.Source) {
		if d.qualifier == "out" {
			outs[d.name] = d.typ
		}
	}

	for _, d := range declarations(frag.Source) {

		if d.qualifier != "in" {
			continue
		}

		typ, ok := outs[d.name]
		if !ok {
			return fmt.Sprintf("error: fragment shader input `%s' has no matching output in the previous stage\n", d.name)
		}

		if typ != d.typ {
			return fmt.Sprintf("error: `%s' declared as type `%s' but outputting type `%s'\n", d.name, d.typ, typ)
		}
	}

	uniformTypes := map[string]string{}
	for _, s := range stages {
		for _, d := range declarations(s.Source) {

			if d.qualifier != "uniform" {
				continue
			}

			if typ, ok := uniformTypes[d.name]; ok && typ != d.typ {
				return fmt.Sprintf("error: uniform `%s' declared as type `%s' and type `%s'\n", d.name, typ, d.typ)
			}
			uniformTypes[d.name] = d.typ
		}
	}

	return ""
}

// activeUniforms assigns locations to uniforms that are referenced beyond
// their declaration, mimicking drivers stripping unused uniforms.
func activeUniforms(stages []*Shader) []Uniform {

	var all strings.Builder
	for _, s := range stages {
		all.WriteString(stripComments(s.Source))
		all.WriteByte('\n')
	}
	code := all.String()

	var uniforms []Uniform
	seen := map[string]bool{}
	for _, s := range stages {
		for _, d := range declarations(s.Source) {

			if d.qualifier != "uniform" || seen[d.name] {
				continue
			}
			seen[d.name] = true

			uses := regexp.MustCompile(`\b`+regexp.QuoteMeta(d.name)+`\b`).FindAllStringIndex(code, -1)
			declCount := 0
			for _, st := range stages {
				for _, sd := range declarations(st.Source) {
					if sd.qualifier == "uniform" && sd.name == d.name {
						declCount++
					}
				}
			}

			if len(uses) <= declCount {
				continue
			}

			uniforms = append(uniforms, Uniform{
				Name:     d.name,
				Type:     gpu.TypeFromName(d.typ),
				Location: int32(len(uniforms)),
			})
		}
	}

	return uniforms
}

func stageName(kind gpu.Enum) string {
	switch kind {
	case gpu.VertexShader:
		return "vertex"
	case gpu.FragmentShader:
		return "fragment"
	case gpu.GeometryShader:
		return "geometry"
	}
	return "unknown"
}

func lineOf(code string, offset int) int {
	return strings.Count(code[:offset], "\n") + 1
}

func restOfLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i != -1 {
		return s[:i]
	}
	return s
}
