package metadata

// field locates one value inside a descriptor file and knows where a new
// assignment goes when the value is absent.
type field struct {
	// locate returns the byte span of the current value.
	locate func(content string) (start, end int, ok bool)
	// render turns a value into the text that replaces the located span.
	render func(value string) string
	// insert returns the position and text of a new assignment. A nil insert
	// means the field is only ever replaced.
	insert func(content, value string) (pos int, text string, ok bool)
}

// upsert replaces the field's value or inserts it. An empty value or a
// field with no location and no insertion point leaves content untouched.
func (f field) upsert(content, value string) string {
	if value == "" {
		return content
	}
	if start, end, ok := f.locate(content); ok {
		return content[:start] + f.render(value) + content[end:]
	}
	if f.insert == nil {
		return content
	}
	pos, text, ok := f.insert(content, value)
	if !ok {
		return content
	}
	return content[:pos] + text + content[pos:]
}
