package util

//*******************************************
// flags
//*******************************************

// Per-id scratch values with a default, used by graph searches.
//
// Reset restores only the touched entries.
type Flags[T any] struct {
	flags   Array[T]
	touched Array[bool]
	changed List[int32]
	_null   T
}

func NewFlags[T any](count int32, null T) Flags[T] {
	flags := NewArray[T](int(count))
	for i := 0; i < int(count); i++ {
		flags[i] = null
	}
	return Flags[T]{
		flags:   flags,
		touched: NewArray[bool](int(count)),
		changed: NewList[int32](100),
		_null:   null,
	}
}

func (self *Flags[T]) Get(id int32) *T {
	if !self.touched[id] {
		self.touched[id] = true
		self.changed.Add(id)
	}
	return &self.flags[id]
}

// Returns the value without marking the id as touched.
func (self *Flags[T]) Peek(id int32) T {
	return self.flags[id]
}

func (self *Flags[T]) Reset() {
	for _, id := range self.changed {
		self.flags[id] = self._null
		self.touched[id] = false
	}
	self.changed = self.changed[:0]
}
