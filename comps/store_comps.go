package comps

//*******************************************
// graph io
//*******************************************

type IStoreable interface {
	_Store(path string) error
}

func Store(comp IStoreable, path string) error {
	return comp._Store(path)
}
