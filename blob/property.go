package blob

// SliceIDColumn is an IDColumn backed by an already-decoded id slice and an
// optional presence bitmap (nil means every feature has an id). Decoding
// the underlying wire column (PRESENT/DATA streams, varint vs. FastPFOR) is
// out of scope here; callers that need that wire format construct one of
// these from whatever decoder they use for property columns.
type SliceIDColumn struct {
	ids     []uint64
	present []bool
}

// NewSliceIDColumn builds an IDColumn over ids, where present, if non-nil,
// marks which features actually carry an id.
func NewSliceIDColumn(ids []uint64, present []bool) *SliceIDColumn {
	return &SliceIDColumn{ids: ids, present: present}
}

// GetID implements IDColumn.
func (c *SliceIDColumn) GetID(i int) (uint64, bool) {
	if i < 0 || i >= len(c.ids) {
		return 0, false
	}
	if c.present != nil && !c.present[i] {
		return 0, false
	}
	return c.ids[i], true
}

// SliceProperty is a PropertyColumn backed by an already-decoded slice of
// scalar values plus an optional presence bitmap.
type SliceProperty struct {
	name    string
	values  []any
	present []bool
}

// NewSliceProperty builds a PropertyColumn named name over values, where
// present, if non-nil, marks which features actually carry a value.
func NewSliceProperty(name string, values []any, present []bool) *SliceProperty {
	return &SliceProperty{name: name, values: values, present: present}
}

// Name implements PropertyColumn.
func (c *SliceProperty) Name() string { return c.name }

// GetValue implements PropertyColumn.
func (c *SliceProperty) GetValue(i int) (any, bool) {
	if i < 0 || i >= len(c.values) {
		return nil, false
	}
	if c.present != nil && !c.present[i] {
		return nil, false
	}
	if c.values[i] == nil {
		return nil, false
	}
	return c.values[i], true
}
