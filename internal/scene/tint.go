package scene

import "github.com/iburimskiy/hover-wallpaper/internal/effects"

// ResampleTint draws a tint index from [0,n) different from current. With
// fewer than two tints there is nothing to change to and current is returned.
func ResampleTint(rng effects.Rand, n, current int) int {
	if n < 2 {
		return current
	}
	for {
		if c := rng.Intn(n); c != current {
			return c
		}
	}
}
