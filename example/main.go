//go:build !sumgen

package main

import "fmt"

func area(s Shape) float64 {
	return MatchShape(s,
		func(radius float64) float64 { return 3.14 * radius * radius },
		func(w, h float64) float64 { return w * h },
	)
}

func main() {
	// Output: Circle(5)
	circle := Circle(5)
	fmt.Println(circle)

	// Output: 78.5
	fmt.Println(area(circle))

	// Output: true false
	fmt.Println(circle.Equal(Circle(5)), circle.Equal(Rect(2, 3)))

	// A setter only touches constructors carrying the field.
	// Output: Rect(2, 10) Circle(5)
	fmt.Println(WithH(10, Rect(2, 3)), WithH(10, circle))

	// A partial getter reports absence through the optional shape.
	// Output: 2 <nil>
	rect := Rect(2, 3)
	w := GetW(rect)
	fmt.Println(*w, GetW(circle))

	// A prism round-trips through its constructor.
	// Output: Circle(7)
	if payload := ShapeCirclePrism.Preview(Circle(7)); payload != nil {
		fmt.Println(ShapeCirclePrism.Review(*payload))
	}

	// A lazy signal computes itself on first match only.
	// Output: computed Blink(2) Blink(2)
	signal := LazySignal(func() Signal {
		fmt.Print("computed ")
		return Blink(2)
	})
	fmt.Println(signal, signal)

	// Output: 2 true
	hz, ok := GetHz(signal).Get()
	fmt.Println(hz, ok)
}
