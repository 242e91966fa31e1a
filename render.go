package xmltree

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultHeader = `<?xml version="1.0" encoding="UTF-8"?>`
	DefaultIndent = "\t"
)

type RenderOption func(*Renderer)

// WithIndent sets the indentation written once per depth level.
func WithIndent(unit string) RenderOption {
	return func(r *Renderer) {
		r.Indent = unit
	}
}

// WithHeader emits header on its own line before the root. An empty header
// selects DefaultHeader.
func WithHeader(header string) RenderOption {
	return func(r *Renderer) {
		if header == "" {
			header = DefaultHeader
		}
		r.Header = header
	}
}

// WithDispose tears the rendered tree down once it has been written.
func WithDispose() RenderOption {
	return func(r *Renderer) {
		r.dispose = true
	}
}

func WithRenderLogger(logger *zap.Logger) RenderOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer writes node trees as indented markup. Formatting of the parsed
// source is not reproduced; structure, attributes and data are.
type Renderer struct {
	Indent string
	Header string

	dispose bool
	logger  *zap.Logger
	w       *bufio.Writer
}

func NewRenderer(w io.Writer, opts ...RenderOption) *Renderer {
	r := &Renderer{
		Indent: DefaultIndent,
		logger: zap.NewNop(),
		w:      bufio.NewWriter(w),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Render(root *Node) error {
	if root == nil {
		return ErrUndefinedNode
	}
	if r.Header != "" {
		r.w.WriteString(r.Header)
		r.w.WriteByte('\n')
	}
	r.RenderNode(root, 0)
	if err := r.w.Flush(); err != nil {
		return errors.WithStack(err)
	}
	if r.dispose {
		r.logger.Debug("disposing rendered tree", zap.String("root", root.Tag()))
		root.Dispose()
	}
	return nil
}

// RenderNode writes node and its subtree at the given depth. Write errors
// surface when the renderer is flushed.
func (r *Renderer) RenderNode(node *Node, depth int) {
	if node.tag == "" {
		// synthetic document node: only its content is written
		for child := node.firstChild; child != nil; child = child.nextSibling {
			r.RenderNode(child, depth)
		}
		return
	}
	indent := strings.Repeat(r.Indent, depth)
	r.w.WriteString(indent)
	r.writeOpen(node)
	if node.selfClosing {
		r.w.WriteString("/>\n")
		return
	}
	r.w.WriteByte('>')
	if !node.HasChildren() {
		r.w.WriteString(node.data)
		r.writeClose(node)
		return
	}
	r.w.WriteByte('\n')
	if node.HasData() {
		r.w.WriteString(indent + r.Indent + node.data + "\n")
	}
	for child := node.firstChild; child != nil; child = child.nextSibling {
		r.RenderNode(child, depth+1)
	}
	r.w.WriteString(indent)
	r.writeClose(node)
}

func (r *Renderer) writeOpen(node *Node) {
	parts := make([]string, 0, len(node.attrs)+1)
	parts = append(parts, node.tag)
	for _, attr := range node.attrs {
		parts = append(parts, attr.Key+"="+quoteAttr(attr.Value))
	}
	r.w.WriteByte('<')
	r.w.WriteString(join(parts))
}

func (r *Renderer) writeClose(node *Node) {
	r.w.WriteString("</" + node.tag + ">\n")
}

// quoteAttr picks the quote character not contained in value. Values holding
// both are written with double quotes and do not survive a reparse.
func quoteAttr(value string) string {
	if strings.Contains(value, `"`) && !strings.Contains(value, "'") {
		return "'" + value + "'"
	}
	return `"` + value + `"`
}

func Render(w io.Writer, root *Node, opts ...RenderOption) error {
	return NewRenderer(w, opts...).Render(root)
}

func RenderString(root *Node, opts ...RenderOption) (string, error) {
	b := &strings.Builder{}
	if err := Render(b, root, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderDocument renders doc.Root preceded by the header it was parsed with,
// if any. Options given by the caller take precedence.
func RenderDocument(w io.Writer, doc *Document, opts ...RenderOption) error {
	if doc == nil {
		return ErrUndefinedNode
	}
	if doc.Header != "" {
		opts = append([]RenderOption{WithHeader(doc.Header)}, opts...)
	}
	return Render(w, doc.Root, opts...)
}
