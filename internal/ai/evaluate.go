package ai

import (
	"context"
	"fmt"
	"math"

	"github.com/prabhath004/quizly/internal/models"
)

// Evaluation is the outcome of grading a single answer.
type Evaluation struct {
	IsCorrect       bool    `json:"is_correct"`
	SimilarityScore float64 `json:"similarity_score"`
	Feedback        string  `json:"feedback"`
}

// EvaluateOption grades an MCQ or true/false answer by option index.
func EvaluateOption(questionType string, selected, correct int) Evaluation {
	if selected == correct {
		return Evaluation{
			IsCorrect:       true,
			SimilarityScore: 1.0,
			Feedback:        "Correct! Well done.",
		}
	}

	var feedback string
	if questionType == models.QuestionTrueFalse {
		answer := "True"
		if correct == 1 {
			answer = "False"
		}
		feedback = fmt.Sprintf("Incorrect. The correct answer is: %s", answer)
	} else {
		feedback = fmt.Sprintf("Incorrect. The correct answer was option %d.", correct)
	}

	return Evaluation{IsCorrect: false, SimilarityScore: 0, Feedback: feedback}
}

// EvaluateFreeResponse grades an open answer by embedding similarity against
// the reference answer.
func (c *Client) EvaluateFreeResponse(ctx context.Context, userAnswer, correctAnswer string, threshold float64) (Evaluation, error) {
	userEmbedding, err := c.Embedding(ctx, userAnswer)
	if err != nil {
		return Evaluation{}, err
	}
	correctEmbedding, err := c.Embedding(ctx, correctAnswer)
	if err != nil {
		return Evaluation{}, err
	}

	similarity, err := CosineSimilarity(userEmbedding, correctEmbedding)
	if err != nil {
		return Evaluation{}, err
	}

	return Evaluation{
		IsCorrect:       similarity >= threshold,
		SimilarityScore: similarity,
		Feedback:        similarityFeedback(similarity, threshold),
	}, nil
}

func similarityFeedback(similarity, threshold float64) string {
	switch {
	case similarity >= threshold:
		return "Great job! Your answer is correct."
	case similarity > 0.6:
		return "Close! Your answer is partially correct but could be more specific."
	case similarity > 0.3:
		return "Not quite right. Try to be more precise with your answer."
	default:
		return "Incorrect. Please review the material and try again."
	}
}

// CosineSimilarity returns the cosine of the angle between two vectors.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("vectors must be non-empty and of equal length")
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
