package xjson

var (
	EmptyJSON      = []byte("{}")
	NullJSON       = []byte("null")
	EmptyArrayJSON = []byte("[]")
)
