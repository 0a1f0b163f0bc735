package portfolio

import (
	"encoding/json"
	"fmt"
)

// Node type tags used by MarshalBlocks.
const (
	nodeHeading       = "heading"
	nodeParagraph     = "paragraph"
	nodeUnordered     = "unordered_list"
	nodeOrdered       = "ordered_list"
	nodeTable         = "table"
	nodeCode          = "code_block"
	nodeQuote         = "blockquote"
	nodeRule          = "rule"
	nodeText          = "text"
	nodeBold          = "bold"
	nodeItalic        = "italic"
	nodeStrikethrough = "strikethrough"
	nodeInlineCode    = "code"
	nodeImage         = "image"
	nodeLink          = "link"
)

type jsonSpan struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Alt   string `json:"alt,omitempty"`
	Label string `json:"label,omitempty"`
	URL   string `json:"url,omitempty"`
}

type jsonItem struct {
	Ordinal int        `json:"ordinal"`
	Spans   []jsonSpan `json:"spans,omitempty"`
}

type jsonBlock struct {
	Type     string          `json:"type"`
	Level    int             `json:"level,omitempty"`
	Language string          `json:"language,omitempty"`
	Title    string          `json:"title,omitempty"`
	Text     string          `json:"text,omitempty"`
	Header   bool            `json:"header,omitempty"`
	Align    []string        `json:"align,omitempty"`
	Rows     [][][]jsonSpan  `json:"rows,omitempty"`
	Items    json.RawMessage `json:"items,omitempty"`
	Spans    []jsonSpan      `json:"spans,omitempty"`
}

// MarshalBlocks encodes blocks as an indented JSON tree. Every node carries
// a "type" tag.
func MarshalBlocks(blocks []Block) ([]byte, error) {
	nodes := make([]jsonBlock, 0, len(blocks))
	for _, b := range blocks {
		n, err := encodeBlock(b)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	data, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal blocks: %w", err)
	}
	return append(data, '\n'), nil
}

// UnmarshalBlocks decodes a tree written by MarshalBlocks.
func UnmarshalBlocks(data []byte) ([]Block, error) {
	var nodes []jsonBlock
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("unmarshal blocks: %w", err)
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	blocks := make([]Block, 0, len(nodes))
	for i, n := range nodes {
		b, err := decodeBlock(n)
		if err != nil {
			return nil, fmt.Errorf("unmarshal blocks: node %d: %w", i, err)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func encodeBlock(b Block) (jsonBlock, error) {
	switch v := b.(type) {
	case Heading:
		return jsonBlock{Type: nodeHeading, Level: v.Level, Spans: encodeSpans(v.Spans)}, nil
	case Paragraph:
		return jsonBlock{Type: nodeParagraph, Spans: encodeSpans(v.Spans)}, nil
	case UnorderedList:
		items := make([][]jsonSpan, len(v.Items))
		for i, it := range v.Items {
			items[i] = encodeSpans(it)
		}
		raw, err := json.Marshal(items)
		if err != nil {
			return jsonBlock{}, err
		}
		return jsonBlock{Type: nodeUnordered, Items: raw}, nil
	case OrderedList:
		items := make([]jsonItem, len(v.Items))
		for i, it := range v.Items {
			items[i] = jsonItem{Ordinal: it.Ordinal, Spans: encodeSpans(it.Spans)}
		}
		raw, err := json.Marshal(items)
		if err != nil {
			return jsonBlock{}, err
		}
		return jsonBlock{Type: nodeOrdered, Items: raw}, nil
	case Table:
		rows := make([][][]jsonSpan, len(v.Rows))
		for i, row := range v.Rows {
			rows[i] = make([][]jsonSpan, len(row))
			for j, cell := range row {
				rows[i][j] = encodeSpans(cell)
			}
		}
		align := make([]string, len(v.Align))
		for i, a := range v.Align {
			align[i] = a.String()
		}
		return jsonBlock{Type: nodeTable, Header: v.Header, Align: align, Rows: rows}, nil
	case CodeBlock:
		return jsonBlock{Type: nodeCode, Language: v.Language, Title: v.Title, Text: v.Text}, nil
	case Blockquote:
		return jsonBlock{Type: nodeQuote, Level: v.Level, Spans: encodeSpans(v.Spans)}, nil
	case Rule:
		return jsonBlock{Type: nodeRule}, nil
	default:
		return jsonBlock{}, fmt.Errorf("marshal blocks: unknown block %T", b)
	}
}

func encodeSpans(spans []Span) []jsonSpan {
	if len(spans) == 0 {
		return nil
	}
	out := make([]jsonSpan, 0, len(spans))
	for _, s := range spans {
		switch v := s.(type) {
		case Text:
			out = append(out, jsonSpan{Type: nodeText, Text: string(v)})
		case Bold:
			out = append(out, jsonSpan{Type: nodeBold, Text: string(v)})
		case Italic:
			out = append(out, jsonSpan{Type: nodeItalic, Text: string(v)})
		case Strikethrough:
			out = append(out, jsonSpan{Type: nodeStrikethrough, Text: string(v)})
		case InlineCode:
			out = append(out, jsonSpan{Type: nodeInlineCode, Text: string(v)})
		case Image:
			out = append(out, jsonSpan{Type: nodeImage, Alt: v.Alt, URL: v.URL})
		case Link:
			out = append(out, jsonSpan{Type: nodeLink, Label: v.Label, URL: v.URL})
		}
	}
	return out
}

func decodeBlock(n jsonBlock) (Block, error) {
	switch n.Type {
	case nodeHeading:
		if n.Level < 1 || n.Level > 6 {
			return nil, fmt.Errorf("heading level %d out of range", n.Level)
		}
		spans, err := decodeSpans(n.Spans)
		return Heading{Level: n.Level, Spans: spans}, err
	case nodeParagraph:
		spans, err := decodeSpans(n.Spans)
		return Paragraph{Spans: spans}, err
	case nodeUnordered:
		var raw [][]jsonSpan
		if err := decodeItems(n.Items, &raw); err != nil {
			return nil, err
		}
		var items [][]Span
		for _, it := range raw {
			spans, err := decodeSpans(it)
			if err != nil {
				return nil, err
			}
			items = append(items, spans)
		}
		return UnorderedList{Items: items}, nil
	case nodeOrdered:
		var raw []jsonItem
		if err := decodeItems(n.Items, &raw); err != nil {
			return nil, err
		}
		var items []OrderedItem
		for _, it := range raw {
			spans, err := decodeSpans(it.Spans)
			if err != nil {
				return nil, err
			}
			items = append(items, OrderedItem{Ordinal: it.Ordinal, Spans: spans})
		}
		return OrderedList{Items: items}, nil
	case nodeTable:
		t := Table{Header: n.Header}
		for _, a := range n.Align {
			align, err := parseAlignment(a)
			if err != nil {
				return nil, err
			}
			t.Align = append(t.Align, align)
		}
		for _, raw := range n.Rows {
			row := make(Row, len(raw))
			for j, cell := range raw {
				spans, err := decodeSpans(cell)
				if err != nil {
					return nil, err
				}
				row[j] = spans
			}
			t.Rows = append(t.Rows, row)
		}
		return t, nil
	case nodeCode:
		return CodeBlock{Language: n.Language, Title: n.Title, Text: n.Text}, nil
	case nodeQuote:
		spans, err := decodeSpans(n.Spans)
		return Blockquote{Level: n.Level, Spans: spans}, err
	case nodeRule:
		return Rule{}, nil
	default:
		return nil, fmt.Errorf("unknown block type %q", n.Type)
	}
}

func decodeItems(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func decodeSpans(in []jsonSpan) ([]Span, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]Span, 0, len(in))
	for _, s := range in {
		switch s.Type {
		case nodeText:
			out = append(out, Text(s.Text))
		case nodeBold:
			out = append(out, Bold(s.Text))
		case nodeItalic:
			out = append(out, Italic(s.Text))
		case nodeStrikethrough:
			out = append(out, Strikethrough(s.Text))
		case nodeInlineCode:
			out = append(out, InlineCode(s.Text))
		case nodeImage:
			out = append(out, Image{Alt: s.Alt, URL: s.URL})
		case nodeLink:
			out = append(out, Link{Label: s.Label, URL: s.URL})
		default:
			return nil, fmt.Errorf("unknown span type %q", s.Type)
		}
	}
	return out, nil
}

func parseAlignment(s string) (Alignment, error) {
	switch s {
	case "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	default:
		return AlignLeft, fmt.Errorf("unknown alignment %q", s)
	}
}
