package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalenzuela/selekta/internal/apperr"
	"github.com/nvalenzuela/selekta/internal/dto"
	"github.com/nvalenzuela/selekta/internal/model"
)

func responseFixture() (*model.Test, *model.TestResponse) {
	test := &model.Test{
		ID:    "t1",
		Title: "Backend basics",
		Type:  model.TestTypeKnowledge,
		Questions: []model.Question{
			{ID: "q1", TestID: "t1", Order: 0, Points: 5, CorrectAnswers: model.StringList{"a"}},
			{ID: "q2", TestID: "t1", Order: 1, Points: 5, CorrectAnswers: model.StringList{"b"}},
		},
	}
	response := &model.TestResponse{
		ID:              "r1",
		TestID:          "t1",
		Test:            *test,
		WorkerProcessID: "wp1",
		StartedAt:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	return test, response
}

// responseService wires the service over fakes seeded with the fixture
// test's questions and the wp1 application.
func responseService(test *model.Test, responseRepo *fakeResponseRepo, answerRepo *fakeAnswerRepo, scoring ScoringService, clock Clock) TestResponseService {
	wpRepo := newFakeWorkerProcessRepo(&model.WorkerProcess{ID: "wp1", WorkerID: "w1", ProcessID: "p1", Status: model.StatusInProcess})
	return NewTestResponseService(
		newFakeTestRepo(test),
		newFakeQuestionRepo(test.Questions...),
		responseRepo,
		answerRepo,
		wpRepo,
		scoring,
		clock,
	)
}

func TestStartTestCreatesResponse(t *testing.T) {
	test, _ := responseFixture()
	responseRepo := newFakeResponseRepo()
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	svc := responseService(test, responseRepo, newFakeAnswerRepo(), &fakeScoringService{}, fixedClock(now))

	got, err := svc.StartTest(context.Background(), dto.StartTestDTO{TestID: "t1", WorkerProcessID: "wp1"})
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "t1", got.TestID)
	assert.Equal(t, "wp1", got.WorkerProcessID)
	assert.Equal(t, now, got.StartedAt)
	assert.False(t, got.IsCompleted)
	assert.Len(t, responseRepo.responses, 1)
}

func TestStartTestIsIdempotent(t *testing.T) {
	test, response := responseFixture()
	responseRepo := newFakeResponseRepo(response)
	svc := responseService(test, responseRepo, newFakeAnswerRepo(), &fakeScoringService{}, fixedClock(time.Now()))

	got, err := svc.StartTest(context.Background(), dto.StartTestDTO{TestID: "t1", WorkerProcessID: "wp1"})
	require.NoError(t, err)

	// The in-progress response is returned unchanged, no new row appears.
	assert.Equal(t, "r1", got.ID)
	assert.Equal(t, response.StartedAt, got.StartedAt)
	assert.Len(t, responseRepo.responses, 1)
}

func TestStartTestRejectsCompletedResponse(t *testing.T) {
	test, response := responseFixture()
	response.IsCompleted = true
	responseRepo := newFakeResponseRepo(response)
	svc := responseService(test, responseRepo, newFakeAnswerRepo(), &fakeScoringService{}, fixedClock(time.Now()))

	_, err := svc.StartTest(context.Background(), dto.StartTestDTO{TestID: "t1", WorkerProcessID: "wp1"})
	require.ErrorIs(t, err, apperr.ErrAlreadyCompleted)
}

func TestStartTestUnknownTest(t *testing.T) {
	test, _ := responseFixture()
	svc := responseService(test, newFakeResponseRepo(), newFakeAnswerRepo(), &fakeScoringService{}, fixedClock(time.Now()))

	_, err := svc.StartTest(context.Background(), dto.StartTestDTO{TestID: "missing", WorkerProcessID: "wp1"})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStartTestUnknownApplication(t *testing.T) {
	test, _ := responseFixture()
	responseRepo := newFakeResponseRepo()
	svc := responseService(test, responseRepo, newFakeAnswerRepo(), &fakeScoringService{}, fixedClock(time.Now()))

	_, err := svc.StartTest(context.Background(), dto.StartTestDTO{TestID: "t1", WorkerProcessID: "no-such-application"})
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, responseRepo.responses)
}

func TestStartTestLosesCreateRace(t *testing.T) {
	test, response := responseFixture()
	responseRepo := newFakeResponseRepo(response)
	// The initial lookup misses, the create hits the unique index, and
	// the concurrent winner's row is fetched instead.
	responseRepo.missNextLookup = true
	svc := responseService(test, responseRepo, newFakeAnswerRepo(), &fakeScoringService{}, fixedClock(time.Now()))

	got, err := svc.StartTest(context.Background(), dto.StartTestDTO{TestID: "t1", WorkerProcessID: "wp1"})
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)
	assert.Len(t, responseRepo.responses, 1)
}

func TestSubmitTestGradesAndCompletes(t *testing.T) {
	test, response := responseFixture()
	responseRepo := newFakeResponseRepo(response)
	answerRepo := newFakeAnswerRepo()
	scoring := &fakeScoringService{}
	now := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	svc := responseService(test, responseRepo, answerRepo, scoring, fixedClock(now))

	got, err := svc.SubmitTest(context.Background(), "r1", dto.SubmitTestDTO{
		Answers: []dto.SubmitAnswerDTO{
			{QuestionID: "q1", Value: model.ScalarValue("a")},
			{QuestionID: "q2", Value: model.MultiValue("b", "c")},
		},
	})
	require.NoError(t, err)

	assert.True(t, got.IsCompleted)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, now, *got.CompletedAt)

	require.Len(t, answerRepo.savedBatches, 1)
	assert.Len(t, answerRepo.savedBatches[0], 2)
	assert.Equal(t, []string{"r1"}, scoring.autoEvaluateCalls)
}

func TestSubmitTestSkipsAutoEvaluationForManualReview(t *testing.T) {
	test, response := responseFixture()
	test.RequiresManualReview = true
	response.Test = *test
	responseRepo := newFakeResponseRepo(response)
	scoring := &fakeScoringService{}
	svc := responseService(test, responseRepo, newFakeAnswerRepo(), scoring, fixedClock(time.Now()))

	got, err := svc.SubmitTest(context.Background(), "r1", dto.SubmitTestDTO{
		Answers: []dto.SubmitAnswerDTO{{QuestionID: "q1", Value: model.ScalarValue("a")}},
	})
	require.NoError(t, err)

	assert.True(t, got.IsCompleted)
	assert.Empty(t, scoring.autoEvaluateCalls)
	assert.Nil(t, got.Score)
}

func TestSubmitTestUpsertsByQuestion(t *testing.T) {
	test, response := responseFixture()
	response.Answers = []model.TestAnswer{
		{ID: "a1", TestResponseID: "r1", QuestionID: "q1", Question: test.Questions[0], Value: model.ScalarValue("old")},
	}
	responseRepo := newFakeResponseRepo(response)
	answerRepo := newFakeAnswerRepo(&response.Answers[0])
	svc := responseService(test, responseRepo, answerRepo, &fakeScoringService{}, fixedClock(time.Now()))

	_, err := svc.SubmitTest(context.Background(), "r1", dto.SubmitTestDTO{
		Answers: []dto.SubmitAnswerDTO{
			{QuestionID: "q1", Value: model.ScalarValue("new")},
			{QuestionID: "q2", Value: model.ScalarValue("b")},
		},
	})
	require.NoError(t, err)

	// q1 keeps its row identity; q2 gets a fresh one.
	require.Len(t, answerRepo.savedBatches, 1)
	batch := answerRepo.savedBatches[0]
	require.Len(t, batch, 2)
	assert.Equal(t, "a1", batch[0].ID)
	assert.Equal(t, "new", batch[0].Value.Scalar)
	assert.NotEmpty(t, batch[1].ID)
	assert.NotEqual(t, "a1", batch[1].ID)
	assert.Len(t, answerRepo.answers, 2)
}

func TestSubmitTestCollapsesDuplicateQuestionEntries(t *testing.T) {
	test, response := responseFixture()
	responseRepo := newFakeResponseRepo(response)
	answerRepo := newFakeAnswerRepo()
	svc := responseService(test, responseRepo, answerRepo, &fakeScoringService{}, fixedClock(time.Now()))

	// Two entries for q1 in one submission: one row, last value wins.
	_, err := svc.SubmitTest(context.Background(), "r1", dto.SubmitTestDTO{
		Answers: []dto.SubmitAnswerDTO{
			{QuestionID: "q1", Value: model.ScalarValue("first")},
			{QuestionID: "q1", Value: model.ScalarValue("second")},
		},
	})
	require.NoError(t, err)

	require.Len(t, answerRepo.savedBatches, 1)
	batch := answerRepo.savedBatches[0]
	require.Len(t, batch, 1)
	assert.Equal(t, "q1", batch[0].QuestionID)
	assert.Equal(t, "second", batch[0].Value.Scalar)
}

func TestSubmitTestRejectsCompletedResponse(t *testing.T) {
	test, response := responseFixture()
	response.IsCompleted = true
	responseRepo := newFakeResponseRepo(response)
	answerRepo := newFakeAnswerRepo()
	svc := responseService(test, responseRepo, answerRepo, &fakeScoringService{}, fixedClock(time.Now()))

	_, err := svc.SubmitTest(context.Background(), "r1", dto.SubmitTestDTO{
		Answers: []dto.SubmitAnswerDTO{{QuestionID: "q1", Value: model.ScalarValue("a")}},
	})
	require.ErrorIs(t, err, apperr.ErrAlreadyCompleted)
	// Stored answers stay untouched.
	assert.Empty(t, answerRepo.savedBatches)
}

func TestSubmitTestRejectsForeignQuestion(t *testing.T) {
	test, response := responseFixture()
	responseRepo := newFakeResponseRepo(response)
	answerRepo := newFakeAnswerRepo()
	svc := responseService(test, responseRepo, answerRepo, &fakeScoringService{}, fixedClock(time.Now()))

	_, err := svc.SubmitTest(context.Background(), "r1", dto.SubmitTestDTO{
		Answers: []dto.SubmitAnswerDTO{{QuestionID: "other-test-question", Value: model.ScalarValue("a")}},
	})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Empty(t, answerRepo.savedBatches)
}
