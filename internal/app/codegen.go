// Package app implements the PasteBridge application logic.
package app

import (
	"fmt"
	"math/rand"
)

// Word lists behind the memorable notepad codes. A code reads
// adjective + noun + two-digit number, e.g. "redtiger42".
var (
	codeAdjectives = []string{
		"red", "blue", "green", "gold", "silver", "bright", "dark", "swift",
		"calm", "wild", "cool", "warm", "soft", "bold", "quick", "slow",
		"big", "tiny", "happy", "lucky", "sunny", "rainy", "snowy", "windy",
		"fresh", "crisp", "smooth", "sharp", "sweet", "spicy", "salty", "tangy",
	}
	codeNouns = []string{
		"tiger", "eagle", "wolf", "bear", "hawk", "lion", "fox", "deer",
		"moon", "star", "sun", "cloud", "rain", "snow", "wind", "storm",
		"tree", "leaf", "rose", "lily", "oak", "pine", "palm", "fern",
		"rock", "wave", "fire", "ice", "sand", "lake", "river", "peak",
	}
)

// codeAttempts bounds the uniqueness retries before giving up.
const codeAttempts = 10

// GenerateCode produces one candidate notepad code.
func GenerateCode() string {
	adj := codeAdjectives[rand.Intn(len(codeAdjectives))]
	noun := codeNouns[rand.Intn(len(codeNouns))]
	num := 10 + rand.Intn(90)
	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
