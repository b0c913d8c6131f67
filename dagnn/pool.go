package dagnn

import (
	"sync"
)

var (
	poolLock sync.Mutex
	vecPool  = make(map[int]*sync.Pool)
	iterPool = make(map[int]map[int]*sync.Pool)
)

// borrowVec returns a zeroed []float32 of length n.
func borrowVec(n int) []float32 {
	poolLock.Lock()
	p, ok := vecPool[n]
	if !ok {
		p = &sync.Pool{
			New: func() interface{} { return make([]float32, n) },
		}
		vecPool[n] = p
	}
	poolLock.Unlock()

	retVal := p.Get().([]float32)
	for i := range retVal {
		retVal[i] = 0
	}
	return retVal
}

func returnVec(a []float32) {
	poolLock.Lock()
	p, ok := vecPool[len(a)]
	poolLock.Unlock()
	if ok {
		p.Put(a)
	}
}

func borrowIterator(m, n int) [][]float32 {
	poolLock.Lock()
	defer poolLock.Unlock()
	if d, ok := iterPool[m]; ok {
		if d2, ok := d[n]; ok {
			return d2.Get().([][]float32)
		}
	}
	return make([][]float32, m)
}

// ReturnIterator returns an iterator made by MakeIterator to the pool.
func ReturnIterator(m, n int, it [][]float32) {
	poolLock.Lock()
	defer poolLock.Unlock()
	d, ok := iterPool[m]
	if !ok {
		d = make(map[int]*sync.Pool)
		iterPool[m] = d
	}
	if _, ok := d[n]; !ok {
		d[n] = &sync.Pool{
			New: func() interface{} { return make([][]float32, m) },
		}
	}
	for i := range it {
		it[i] = nil
	}
	d[n].Put(it)
}

// MakeIterator makes row views of a row-major m×n matrix. The rows share the backing.
func MakeIterator(backing []float32, m, n int) (retVal [][]float32) {
	retVal = borrowIterator(m, n)
	for i := range retVal {
		start := i * n
		retVal[i] = backing[start : start+n : start+n]
	}
	return
}
