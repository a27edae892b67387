package util

//*******************************************
// array
//*******************************************

type Array[T any] []T

func NewArray[T any](size int) Array[T] {
	return make([]T, size)
}

func (self Array[T]) Length() int {
	return len(self)
}
func (self Array[T]) Get(index int) T {
	return self[index]
}
func (self Array[T]) Set(index int, value T) {
	self[index] = value
}

//*******************************************
// list
//*******************************************

type List[T any] []T

func NewList[T any](cap int) List[T] {
	return make([]T, 0, cap)
}

func (self *List[T]) Add(value T) {
	*self = append(*self, value)
}
func (self List[T]) Length() int {
	return len(self)
}
func (self List[T]) Get(index int) T {
	return self[index]
}
func (self List[T]) Set(index int, value T) {
	self[index] = value
}

// Removes the last element and returns it.
func (self *List[T]) Pop() (T, bool) {
	l := len(*self)
	if l == 0 {
		var t T
		return t, false
	}
	value := (*self)[l-1]
	*self = (*self)[:l-1]
	return value, true
}

//*******************************************
// dict
//*******************************************

type Dict[K comparable, V any] map[K]V

func NewDict[K comparable, V any](cap int) Dict[K, V] {
	return make(map[K]V, cap)
}

func (self Dict[K, V]) ContainsKey(key K) bool {
	_, ok := self[key]
	return ok
}
func (self Dict[K, V]) Get(key K) V {
	return self[key]
}
func (self Dict[K, V]) Set(key K, value V) {
	self[key] = value
}
func (self Dict[K, V]) Delete(key K) {
	delete(self, key)
}
func (self Dict[K, V]) Length() int {
	return len(self)
}
func (self Dict[K, V]) Keys() List[K] {
	keys := NewList[K](len(self))
	for key := range self {
		keys.Add(key)
	}
	return keys
}

//*******************************************
// optional
//*******************************************

type Optional[T any] struct {
	Value T
	ok    bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{ok: false}
}

func (self Optional[T]) HasValue() bool {
	return self.ok
}

//*******************************************
// tuples
//*******************************************

type Tuple[A any, B any] struct {
	A A
	B B
}

func MakeTuple[A any, B any](a A, b B) Tuple[A, B] {
	return Tuple[A, B]{A: a, B: b}
}

type Triple[A any, B any, C any] struct {
	A A
	B B
	C C
}

func MakeTriple[A any, B any, C any](a A, b B, c C) Triple[A, B, C] {
	return Triple[A, B, C]{A: a, B: b, C: c}
}

//*******************************************
// utility functions
//*******************************************

func Contains[T comparable](arr []T, value T) bool {
	for _, item := range arr {
		if item == value {
			return true
		}
	}
	return false
}

// Returns the most frequent value. Ties go to the value that reached the count first.
func GetMostCommon[T comparable](arr []T) T {
	var max_val T
	max_count := 0
	counts := NewDict[T, int](10)
	for i := 0; i < len(arr); i++ {
		val := arr[i]
		count := counts[val]
		count += 1
		if count > max_count {
			max_count = count
			max_val = val
		}
		counts[val] = count
	}
	return max_val
}
