package stft_test

import (
	"fmt"

	"github.com/cwbudde/algo-stft/dsp/stft"
	"github.com/cwbudde/algo-stft/dsp/window"
)

func ExampleNew() {
	s, err := stft.New(window.Hanning, 8, 4)
	if err != nil {
		panic(err)
	}

	s.AppendSamples([]float64{500, 0, 100, 0})
	fmt.Println("can compute:", s.CanCompute())

	s.AppendSamples([]float64{100, 0, 500, 0})
	fmt.Println("can compute:", s.CanCompute())

	column := make([]float64, s.OutputSize())
	if err := s.ComputeColumn(column); err != nil {
		panic(err)
	}

	fmt.Printf("%.4f\n", column)

	s.MoveToNextColumn()
	fmt.Println("buffered:", s.Len())

	// Output:
	// can compute: false
	// can compute: true
	// [2.3985 2.0027 1.7796 2.0027]
	// buffered: 4
}

func ExampleSTFTT_Columns() {
	s, err := stft.New(window.Hamming, 16, 8)
	if err != nil {
		panic(err)
	}

	signal := make([]float64, 64)
	for i := range signal {
		signal[i] = float64(i % 4)
	}

	count := 0
	err = s.Columns(signal, func(column []float64) error {
		count++
		return nil
	})
	if err != nil {
		panic(err)
	}

	fmt.Println("columns:", count)
	fmt.Println("left over:", s.Len())

	// Output:
	// columns: 7
	// left over: 8
}

func ExampleSTFTT_Freqs() {
	s, err := stft.New(window.Hanning, 8, 4)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.1f\n", s.Freqs(8000))
	fmt.Printf("first %.4fs, then every %.4fs\n", s.FirstTime(8000), s.TimeInterval(8000))

	// Output:
	// [0.0 1333.3 2666.7 4000.0]
	// first 0.0005s, then every 0.0005s
}
