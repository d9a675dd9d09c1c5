package exam

import "context"

const SampleTestID = "sample-test-1"

// SampleTest is the test stored at start-up so a fresh install has
// something to take.
func SampleTest() Test {
	return Test{
		TestID:   SampleTestID,
		TestName: "Sample Test 1",
		Questions: []Question{
			{
				QuestionID:   "q1",
				QuestionText: "What is the capital of France?",
				Options: []Option{
					{OptionID: "q1o1", OptionText: "Paris", IsCorrect: true},
					{OptionID: "q1o2", OptionText: "London"},
					{OptionID: "q1o3", OptionText: "Berlin"},
					{OptionID: "q1o4", OptionText: "Rome"},
				},
				CorrectAnswers: []string{"q1o1"},
			},
		},
	}
}

// SeedSample upserts SampleTest, so repeated start-ups do not duplicate it.
func SeedSample(ctx context.Context, repo TestRepository) error {
	return repo.PutTest(ctx, SampleTest())
}
