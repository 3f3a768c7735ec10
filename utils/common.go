package utils

import "time"

type Index []int

func NewIndex(n int) (I Index) {
	I = make(Index, n)
	return
}

type EvalOp uint8

const (
	Equal EvalOp = iota
	Less
	Greater
	LessOrEqual
	GreaterOrEqual
)

func SleepFor(milliseconds int) {
	time.Sleep(time.Duration(milliseconds) * time.Millisecond)
}

func SleepForever() {
	for {
		time.Sleep(time.Hour)
	}
}
