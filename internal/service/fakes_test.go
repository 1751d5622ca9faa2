package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nvalenzuela/selekta/internal/apperr"
	"github.com/nvalenzuela/selekta/internal/dto"
	"github.com/nvalenzuela/selekta/internal/model"
	"github.com/nvalenzuela/selekta/internal/repository"
)

// In-memory repository fakes. They model just enough of the persistence
// contract (unique pairs, not-found, field whitelists) for the services
// under test; gorm hooks do not run here, so IDs are assigned on create.

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

type fakeTestRepo struct {
	tests map[string]*model.Test

	replaceCalls int
}

func newFakeTestRepo(tests ...*model.Test) *fakeTestRepo {
	r := &fakeTestRepo{tests: make(map[string]*model.Test)}
	for _, t := range tests {
		r.tests[t.ID] = t
	}
	return r
}

var _ repository.TestRepository = (*fakeTestRepo)(nil)

func (r *fakeTestRepo) Create(_ context.Context, test *model.Test) error {
	if test.ID == "" {
		test.ID = uuid.NewString()
	}
	for i := range test.Questions {
		if test.Questions[i].ID == "" {
			test.Questions[i].ID = uuid.NewString()
		}
		test.Questions[i].TestID = test.ID
	}
	r.tests[test.ID] = test
	return nil
}

func (r *fakeTestRepo) FindByID(_ context.Context, id string) (*model.Test, error) {
	test, ok := r.tests[id]
	if !ok {
		return nil, apperr.NotFoundf("test %s", id)
	}
	return test, nil
}

func (r *fakeTestRepo) FindByIDWithQuestions(ctx context.Context, id string) (*model.Test, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeTestRepo) FindAll(_ context.Context) ([]model.Test, error) {
	out := make([]model.Test, 0, len(r.tests))
	for _, t := range r.tests {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTestRepo) FindActiveByType(_ context.Context, testType model.TestType) ([]model.Test, error) {
	var out []model.Test
	for _, t := range r.tests {
		if t.Type == testType && t.IsActive {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTestRepo) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	test, ok := r.tests[id]
	if !ok {
		return apperr.NotFoundf("test %s", id)
	}
	for col, val := range fields {
		switch col {
		case "title":
			test.Title = val.(string)
		case "description":
			test.Description = val.(string)
		case "type":
			test.Type = val.(model.TestType)
		case "is_active":
			test.IsActive = val.(bool)
		case "requires_manual_review":
			test.RequiresManualReview = val.(bool)
		case "passing_score":
			score := val.(int)
			test.PassingScore = &score
		default:
			return fmt.Errorf("fakeTestRepo: unexpected column %q", col)
		}
	}
	return nil
}

func (r *fakeTestRepo) ReplaceQuestions(_ context.Context, testID string, questions []model.Question) error {
	test, ok := r.tests[testID]
	if !ok {
		return apperr.NotFoundf("test %s", testID)
	}
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuid.NewString()
		}
		questions[i].TestID = testID
	}
	test.Questions = questions
	r.replaceCalls++
	return nil
}

func (r *fakeTestRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tests[id]; !ok {
		return apperr.NotFoundf("test %s", id)
	}
	delete(r.tests, id)
	return nil
}

type fakeQuestionRepo struct {
	questions map[string]*model.Question
}

func newFakeQuestionRepo(questions ...model.Question) *fakeQuestionRepo {
	r := &fakeQuestionRepo{questions: make(map[string]*model.Question)}
	for i := range questions {
		q := questions[i]
		r.questions[q.ID] = &q
	}
	return r
}

var _ repository.QuestionRepository = (*fakeQuestionRepo)(nil)

func (r *fakeQuestionRepo) FindByID(_ context.Context, id string) (*model.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, apperr.NotFoundf("question %s", id)
	}
	return q, nil
}

func (r *fakeQuestionRepo) FindByTestID(_ context.Context, testID string) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		if q.TestID == testID {
			out = append(out, *q)
		}
	}
	return out, nil
}

type fakeResponseRepo struct {
	responses map[string]*model.TestResponse

	// missNextLookup makes the next FindByTestAndWorkerProcess report
	// not-found even when the row exists, simulating a lookup that ran
	// before a concurrent create committed.
	missNextLookup bool
	// conflictOnCreate makes Create fail the way a unique-index
	// violation does.
	conflictOnCreate bool

	saveScoresCalls int
	savedBatches    [][]*model.TestAnswer
}

func newFakeResponseRepo(responses ...*model.TestResponse) *fakeResponseRepo {
	r := &fakeResponseRepo{responses: make(map[string]*model.TestResponse)}
	for _, resp := range responses {
		r.responses[resp.ID] = resp
	}
	return r
}

var _ repository.TestResponseRepository = (*fakeResponseRepo)(nil)

func (r *fakeResponseRepo) Create(_ context.Context, response *model.TestResponse) error {
	if r.conflictOnCreate {
		return fmt.Errorf("create response: %w", apperr.ErrConflict)
	}
	for _, existing := range r.responses {
		if existing.TestID == response.TestID && existing.WorkerProcessID == response.WorkerProcessID {
			return fmt.Errorf("create response: %w", apperr.ErrConflict)
		}
	}
	if response.ID == "" {
		response.ID = uuid.NewString()
	}
	r.responses[response.ID] = response
	return nil
}

func (r *fakeResponseRepo) FindByID(_ context.Context, id string) (*model.TestResponse, error) {
	response, ok := r.responses[id]
	if !ok {
		return nil, apperr.NotFoundf("test response %s", id)
	}
	return response, nil
}

func (r *fakeResponseRepo) FindByIDWithDetails(ctx context.Context, id string) (*model.TestResponse, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeResponseRepo) FindByTestAndWorkerProcess(_ context.Context, testID, workerProcessID string) (*model.TestResponse, error) {
	if r.missNextLookup {
		r.missNextLookup = false
		return nil, apperr.NotFoundf("test response for test %s", testID)
	}
	for _, response := range r.responses {
		if response.TestID == testID && response.WorkerProcessID == workerProcessID {
			return response, nil
		}
	}
	return nil, apperr.NotFoundf("test response for test %s", testID)
}

func (r *fakeResponseRepo) FindByWorkerProcess(_ context.Context, workerProcessID string) ([]model.TestResponse, error) {
	var out []model.TestResponse
	for _, response := range r.responses {
		if response.WorkerProcessID == workerProcessID {
			out = append(out, *response)
		}
	}
	return out, nil
}

func (r *fakeResponseRepo) FindByTest(_ context.Context, testID string) ([]model.TestResponse, error) {
	var out []model.TestResponse
	for _, response := range r.responses {
		if response.TestID == testID {
			out = append(out, *response)
		}
	}
	return out, nil
}

func (r *fakeResponseRepo) Save(_ context.Context, response *model.TestResponse) error {
	if _, ok := r.responses[response.ID]; !ok {
		return apperr.NotFoundf("test response %s", response.ID)
	}
	r.responses[response.ID] = response
	return nil
}

func (r *fakeResponseRepo) SaveScores(_ context.Context, response *model.TestResponse, answers []*model.TestAnswer) error {
	if _, ok := r.responses[response.ID]; !ok {
		return apperr.NotFoundf("test response %s", response.ID)
	}
	r.responses[response.ID] = response
	r.saveScoresCalls++
	r.savedBatches = append(r.savedBatches, answers)
	return nil
}

type fakeAnswerRepo struct {
	answers map[string]*model.TestAnswer

	savedBatches [][]*model.TestAnswer
}

func newFakeAnswerRepo(answers ...*model.TestAnswer) *fakeAnswerRepo {
	r := &fakeAnswerRepo{answers: make(map[string]*model.TestAnswer)}
	for _, a := range answers {
		r.answers[a.ID] = a
	}
	return r
}

var _ repository.TestAnswerRepository = (*fakeAnswerRepo)(nil)

func (r *fakeAnswerRepo) FindByID(_ context.Context, id string) (*model.TestAnswer, error) {
	answer, ok := r.answers[id]
	if !ok {
		return nil, apperr.NotFoundf("test answer %s", id)
	}
	return answer, nil
}

func (r *fakeAnswerRepo) FindByResponse(_ context.Context, responseID string) ([]model.TestAnswer, error) {
	var out []model.TestAnswer
	for _, answer := range r.answers {
		if answer.TestResponseID == responseID {
			out = append(out, *answer)
		}
	}
	return out, nil
}

func (r *fakeAnswerRepo) SaveBatch(_ context.Context, answers []*model.TestAnswer) error {
	for _, answer := range answers {
		if answer.ID == "" {
			answer.ID = uuid.NewString()
		}
		r.answers[answer.ID] = answer
	}
	r.savedBatches = append(r.savedBatches, answers)
	return nil
}

type fakeScoringService struct {
	autoEvaluateCalls []string
}

var _ ScoringService = (*fakeScoringService)(nil)

func (s *fakeScoringService) AutoEvaluate(_ context.Context, responseID string) (*dto.TestResponseDTO, error) {
	s.autoEvaluateCalls = append(s.autoEvaluateCalls, responseID)
	return &dto.TestResponseDTO{ID: responseID}, nil
}

func (s *fakeScoringService) EvaluateAnswer(context.Context, string, dto.EvaluateAnswerDTO) (*dto.AnswerDTO, error) {
	return nil, fmt.Errorf("fakeScoringService: EvaluateAnswer not expected")
}

func (s *fakeScoringService) RecalculateScore(context.Context, string) (*dto.TestResponseDTO, error) {
	return nil, fmt.Errorf("fakeScoringService: RecalculateScore not expected")
}

type fakeWorkerProcessRepo struct {
	applications map[string]*model.WorkerProcess

	conflictOnCreate bool

	// Company-scoped counts join through selection processes, which the
	// fake does not model; tests preset the figures instead.
	companyTotal      int64
	companyBeforeWeek int64
	companyApproved   int64
}

func newFakeWorkerProcessRepo(wps ...*model.WorkerProcess) *fakeWorkerProcessRepo {
	r := &fakeWorkerProcessRepo{applications: make(map[string]*model.WorkerProcess)}
	for _, wp := range wps {
		r.applications[wp.ID] = wp
	}
	return r
}

var _ repository.WorkerProcessRepository = (*fakeWorkerProcessRepo)(nil)

func (r *fakeWorkerProcessRepo) Create(_ context.Context, wp *model.WorkerProcess) error {
	if r.conflictOnCreate {
		return fmt.Errorf("create application: %w", apperr.ErrConflict)
	}
	for _, existing := range r.applications {
		if existing.WorkerID == wp.WorkerID && existing.ProcessID == wp.ProcessID {
			return fmt.Errorf("create application: %w", apperr.ErrConflict)
		}
	}
	if wp.ID == "" {
		wp.ID = uuid.NewString()
	}
	r.applications[wp.ID] = wp
	return nil
}

func (r *fakeWorkerProcessRepo) FindByID(_ context.Context, id string) (*model.WorkerProcess, error) {
	wp, ok := r.applications[id]
	if !ok {
		return nil, apperr.NotFoundf("application %s", id)
	}
	return wp, nil
}

func (r *fakeWorkerProcessRepo) FindByWorkerAndProcess(_ context.Context, workerID, processID string) (*model.WorkerProcess, error) {
	for _, wp := range r.applications {
		if wp.WorkerID == workerID && wp.ProcessID == processID {
			return wp, nil
		}
	}
	return nil, apperr.NotFoundf("application of worker %s to process %s", workerID, processID)
}

func (r *fakeWorkerProcessRepo) FindByWorker(_ context.Context, workerID string) ([]model.WorkerProcess, error) {
	var out []model.WorkerProcess
	for _, wp := range r.applications {
		if wp.WorkerID == workerID {
			out = append(out, *wp)
		}
	}
	return out, nil
}

func (r *fakeWorkerProcessRepo) FindByProcess(_ context.Context, processID string) ([]model.WorkerProcess, error) {
	var out []model.WorkerProcess
	for _, wp := range r.applications {
		if wp.ProcessID == processID {
			out = append(out, *wp)
		}
	}
	return out, nil
}

func (r *fakeWorkerProcessRepo) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	wp, ok := r.applications[id]
	if !ok {
		return apperr.NotFoundf("application %s", id)
	}
	for col, val := range fields {
		switch col {
		case "status":
			wp.Status = val.(model.WorkerStatus)
		case "evaluated_at":
			at := val.(time.Time)
			wp.EvaluatedAt = &at
		case "notes":
			notes := val.(string)
			wp.Notes = &notes
		default:
			return fmt.Errorf("fakeWorkerProcessRepo: unexpected column %q", col)
		}
	}
	return nil
}

func (r *fakeWorkerProcessRepo) Count(context.Context) (int64, error) {
	return int64(len(r.applications)), nil
}

func (r *fakeWorkerProcessRepo) CountByStatus(_ context.Context, status model.WorkerStatus) (int64, error) {
	var n int64
	for _, wp := range r.applications {
		if wp.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeWorkerProcessRepo) CountByWorker(_ context.Context, workerID string) (int64, error) {
	var n int64
	for _, wp := range r.applications {
		if wp.WorkerID == workerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeWorkerProcessRepo) CountByWorkerAndStatuses(_ context.Context, workerID string, statuses []model.WorkerStatus) (int64, error) {
	var n int64
	for _, wp := range r.applications {
		if wp.WorkerID != workerID {
			continue
		}
		for _, status := range statuses {
			if wp.Status == status {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *fakeWorkerProcessRepo) AppliedProcessIDs(_ context.Context, workerID string) ([]string, error) {
	var ids []string
	for _, wp := range r.applications {
		if wp.WorkerID == workerID {
			ids = append(ids, wp.ProcessID)
		}
	}
	return ids, nil
}

func (r *fakeWorkerProcessRepo) CountByCompany(context.Context, string) (int64, error) {
	return r.companyTotal, nil
}

func (r *fakeWorkerProcessRepo) CountByCompanyCreatedBefore(context.Context, string, time.Time) (int64, error) {
	return r.companyBeforeWeek, nil
}

func (r *fakeWorkerProcessRepo) CountByCompanyAndStatus(context.Context, string, model.WorkerStatus) (int64, error) {
	return r.companyApproved, nil
}

type fakeWorkerRepo struct {
	workers map[string]*model.Worker
}

func newFakeWorkerRepo(ids ...string) *fakeWorkerRepo {
	r := &fakeWorkerRepo{workers: make(map[string]*model.Worker)}
	for _, id := range ids {
		r.workers[id] = &model.Worker{ID: id}
	}
	return r
}

var _ repository.WorkerRepository = (*fakeWorkerRepo)(nil)

func (r *fakeWorkerRepo) FindByID(_ context.Context, id string) (*model.Worker, error) {
	w, ok := r.workers[id]
	if !ok {
		return nil, apperr.NotFoundf("worker %s", id)
	}
	return w, nil
}

type fakeCompanyRepo struct {
	companies map[string]*model.Company
}

func newFakeCompanyRepo(ids ...string) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: make(map[string]*model.Company)}
	for _, id := range ids {
		r.companies[id] = &model.Company{ID: id}
	}
	return r
}

var _ repository.CompanyRepository = (*fakeCompanyRepo)(nil)

func (r *fakeCompanyRepo) FindByID(_ context.Context, id string) (*model.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, apperr.NotFoundf("company %s", id)
	}
	return c, nil
}

type fakeProcessRepo struct {
	processes map[string]*model.SelectionProcess

	companyActive          int64
	companyActiveLastMonth int64
	companyCompletedMonth  int64
}

func newFakeProcessRepo(processes ...*model.SelectionProcess) *fakeProcessRepo {
	r := &fakeProcessRepo{processes: make(map[string]*model.SelectionProcess)}
	for _, p := range processes {
		r.processes[p.ID] = p
	}
	return r
}

var _ repository.SelectionProcessRepository = (*fakeProcessRepo)(nil)

func (r *fakeProcessRepo) FindByID(_ context.Context, id string) (*model.SelectionProcess, error) {
	p, ok := r.processes[id]
	if !ok {
		return nil, apperr.NotFoundf("selection process %s", id)
	}
	return p, nil
}

func (r *fakeProcessRepo) CountByStatus(_ context.Context, status model.ProcessStatus) (int64, error) {
	var n int64
	for _, p := range r.processes {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeProcessRepo) CountByStatusIn(_ context.Context, status model.ProcessStatus, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if p, ok := r.processes[id]; ok && p.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeProcessRepo) CountByCompanyAndStatus(context.Context, string, model.ProcessStatus) (int64, error) {
	return r.companyActive, nil
}

func (r *fakeProcessRepo) CountByCompanyAndStatusCreatedBefore(context.Context, string, model.ProcessStatus, time.Time) (int64, error) {
	return r.companyActiveLastMonth, nil
}

func (r *fakeProcessRepo) CountByCompanyAndStatusUpdatedAfter(context.Context, string, model.ProcessStatus, time.Time) (int64, error) {
	return r.companyCompletedMonth, nil
}
