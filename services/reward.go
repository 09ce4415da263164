package services

import (
	"strings"
	"unicode/utf8"
)

const (
	baseReward       = 50
	exactMatchReward = 100
	lengthBonus      = 20
	lengthThreshold  = 50
	maxReward        = 100
)

// CalculateReward scores a user answer against the reference answer.
// A case-insensitive exact match scores 100, otherwise answers longer than
// 50 characters earn a bonus on top of the baseline.
func CalculateReward(userAnswer, correctAnswer string) int {
	score := baseReward
	if strings.ToLower(userAnswer) == strings.ToLower(correctAnswer) {
		score = exactMatchReward
	} else if utf8.RuneCountInString(userAnswer) > lengthThreshold {
		score += lengthBonus
	}
	return min(score, maxReward)
}
