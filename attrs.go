package xmltree

// Attr is a single key/value pair of a node.
type Attr struct {
	Key   string
	Value string
}

// Attrs is an ordered attribute list with unique keys.
type Attrs []Attr

func (na Attrs) index(key string) int {
	for idx := range na {
		if na[idx].Key == key {
			return idx
		}
	}
	return -1
}

func (na Attrs) Has(key string) bool {
	return na.index(key) >= 0
}

func (na Attrs) Get(key string) (string, bool) {
	idx := na.index(key)
	if idx < 0 {
		return "", false
	}
	return na[idx].Value, true
}

// Set overwrites the value of key in place, or appends a new entry.
func (na *Attrs) Set(key, value string) {
	if idx := na.index(key); idx >= 0 {
		(*na)[idx].Value = value
		return
	}
	*na = append(*na, Attr{Key: key, Value: value})
}

func (na *Attrs) Delete(key string) bool {
	idx := na.index(key)
	if idx < 0 {
		return false
	}
	*na = append((*na)[:idx], (*na)[idx+1:]...)
	return true
}

func (na Attrs) Keys() []string {
	keys := make([]string, len(na))
	for idx := range na {
		keys[idx] = na[idx].Key
	}
	return keys
}

func (na Attrs) Clone() Attrs {
	if na == nil {
		return nil
	}
	return append(Attrs(nil), na...)
}
