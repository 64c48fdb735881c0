package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-stft/dsp/buffer"
)

func ExampleRing() {
	r := buffer.NewRing[float64]()
	r.PushBack(1, 2, 3, 4, 5)

	front := make([]float64, 3)
	_ = r.PeekFront(front)
	fmt.Println(front, r.Len())

	r.DropFront(2)
	_ = r.PeekFront(front)
	fmt.Println(front, r.Len())

	// Output:
	// [1 2 3] 5
	// [3 4 5] 3
}
