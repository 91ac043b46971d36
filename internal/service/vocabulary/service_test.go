package vocabulary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/englearn/backend/internal/domain"
)

// fakeWordRepo is an in-memory wordRepo keyed by headword (verbatim).
type fakeWordRepo struct {
	words map[string]*domain.Word

	// lastPage records the spec the service passed to List.
	lastPage domain.PageSpec

	// failOnHeadword makes Create fail for that exact headword, to
	// exercise the import rollback path.
	failOnHeadword string
}

func newFakeWordRepo() *fakeWordRepo {
	return &fakeWordRepo{words: map[string]*domain.Word{}}
}

func (f *fakeWordRepo) List(_ context.Context, _ domain.WordFilter, page domain.PageSpec) ([]domain.Word, int, error) {
	f.lastPage = page
	out := make([]domain.Word, 0, len(f.words))
	for _, w := range f.words {
		out = append(out, *w)
	}
	return out, len(out), nil
}

func (f *fakeWordRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Word, error) {
	for _, w := range f.words {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeWordRepo) ExistsByHeadword(_ context.Context, headword string) (bool, error) {
	_, ok := f.words[headword]
	return ok, nil
}

func (f *fakeWordRepo) Create(_ context.Context, w *domain.Word) (*domain.Word, error) {
	if w.Headword == f.failOnHeadword && f.failOnHeadword != "" {
		return nil, errors.New("connection reset")
	}
	if _, ok := f.words[w.Headword]; ok {
		return nil, domain.ErrAlreadyExists
	}
	created := *w
	created.ID = uuid.New()
	f.words[w.Headword] = &created
	return &created, nil
}

func (f *fakeWordRepo) Update(_ context.Context, id uuid.UUID, w *domain.Word) (*domain.Word, error) {
	for hw, existing := range f.words {
		if existing.ID == id {
			updated := *w
			updated.ID = id
			delete(f.words, hw)
			f.words[updated.Headword] = &updated
			return &updated, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeWordRepo) Delete(_ context.Context, id uuid.UUID) error {
	for hw, existing := range f.words {
		if existing.ID == id {
			delete(f.words, hw)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeWordRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(f.words))
	f.words = map[string]*domain.Word{}
	return n, nil
}

func (f *fakeWordRepo) Count(_ context.Context) (int, error) {
	return len(f.words), nil
}

func (f *fakeWordRepo) StatsByLevel(_ context.Context) ([]domain.LevelCount, error) {
	counts := map[string]int{}
	for _, w := range f.words {
		counts[w.CEFRLevel]++
	}
	out := make([]domain.LevelCount, 0, len(counts))
	for level, n := range counts {
		out = append(out, domain.LevelCount{Level: level, Count: n})
	}
	return out, nil
}

func (f *fakeWordRepo) StatsByTopic(_ context.Context) ([]domain.TopicCount, error) {
	return nil, nil
}

// fakeTx runs the callback directly and snapshots the repo so a returned
// error restores the pre-transaction state, mimicking a rollback.
type fakeTx struct {
	repo       *fakeWordRepo
	rolledBack bool
}

func (f *fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := map[string]*domain.Word{}
	for k, v := range f.repo.words {
		cp := *v
		snapshot[k] = &cp
	}
	if err := fn(ctx); err != nil {
		f.repo.words = snapshot
		f.rolledBack = true
		return err
	}
	return nil
}

func newTestService(repo *fakeWordRepo) (*Service, *fakeTx) {
	tx := &fakeTx{repo: repo}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(log, repo, tx), tx
}

func TestList_AppliesDefaultLimit(t *testing.T) {
	repo := newFakeWordRepo()
	svc, _ := newTestService(repo)

	res, err := svc.List(context.Background(), domain.WordFilter{}, domain.PageSpec{})

	require.NoError(t, err)
	assert.Equal(t, domain.PageSpec{Page: 1, Limit: DefaultPageLimit}, repo.lastPage)
	assert.Equal(t, 50, res.Pagination.Limit)
	assert.Equal(t, 1, res.Pagination.Page)
}

func TestList_PaginationEnvelope(t *testing.T) {
	repo := newFakeWordRepo()
	svc, _ := newTestService(repo)

	csv := "headword,cefr\napple,A1\nbanana,A2\ncherry,B1\n"
	_, err := svc.Import(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	res, err := svc.List(context.Background(), domain.WordFilter{}, domain.PageSpec{Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 2, repo.lastPage.Offset(), "offset is (page-1)*limit")
	assert.Equal(t, 3, res.Pagination.Total)
	assert.Equal(t, 2, res.Pagination.Pages, "pages is ceil(total/limit)")
}

func TestCreate_NormalizesInput(t *testing.T) {
	repo := newFakeWordRepo()
	svc, _ := newTestService(repo)

	w, err := svc.Create(context.Background(), WordInput{
		Headword:  "  apple ",
		CEFRLevel: "a1",
	})

	require.NoError(t, err)
	assert.Equal(t, "apple", w.Headword)
	assert.Equal(t, "A1", w.CEFRLevel)
}

func TestCreate_DuplicateHeadword(t *testing.T) {
	repo := newFakeWordRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Create(context.Background(), WordInput{Headword: "apple", CEFRLevel: "A1"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), WordInput{Headword: "apple", CEFRLevel: "A2"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestCreate_CaseSensitiveHeadwords(t *testing.T) {
	repo := newFakeWordRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Create(context.Background(), WordInput{Headword: "apple", CEFRLevel: "A1"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), WordInput{Headword: "Apple", CEFRLevel: "A1"})
	require.NoError(t, err, "differently-cased headwords are distinct entries")
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(newFakeWordRepo())

	_, err := svc.Create(context.Background(), WordInput{Headword: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestImport_InsertsNewRows(t *testing.T) {
	repo := newFakeWordRepo()
	svc, _ := newTestService(repo)

	csv := "headword,cefr,translation,topic\n" +
		"apple,a1,qua tao,food\n" +
		"run,b1,chay,\n"

	res, err := svc.Import(context.Background(), strings.NewReader(csv))

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 2, res.TotalProcessed)

	apple := repo.words["apple"]
	require.NotNil(t, apple)
	assert.Equal(t, "A1", apple.CEFRLevel, "import should uppercase CEFR levels")
	require.NotNil(t, apple.Translation)
	assert.Equal(t, "qua tao", *apple.Translation)

	run := repo.words["run"]
	require.NotNil(t, run)
	assert.Nil(t, run.Topic, "empty optional column stays NULL")
}

func TestImport_SecondRunInsertsNothing(t *testing.T) {
	repo := newFakeWordRepo()
	svc, _ := newTestService(repo)

	csv := "headword,cefr\napple,A1\nrun,B1\n"

	first, err := svc.Import(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 2, first.Count)

	second, err := svc.Import(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 0, second.Count, "re-import must be a no-op")
	assert.Equal(t, 2, second.TotalProcessed)
	assert.Len(t, repo.words, 2)
}

func TestImport_PartialOverlapInsertsOnlyNew(t *testing.T) {
	repo := newFakeWordRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Import(context.Background(), strings.NewReader("headword,cefr\napple,A1\n"))
	require.NoError(t, err)

	res, err := svc.Import(context.Background(), strings.NewReader("headword,cefr\napple,A1\nbanana,A2\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Len(t, repo.words, 2)
}

func TestImport_FailureRollsBackWholeBatch(t *testing.T) {
	repo := newFakeWordRepo()
	repo.failOnHeadword = "banana"
	svc, tx := newTestService(repo)

	csv := "headword,cefr\napple,A1\nbanana,A2\ncherry,B1\n"

	_, err := svc.Import(context.Background(), strings.NewReader(csv))

	require.Error(t, err)
	assert.True(t, tx.rolledBack)
	assert.Empty(t, repo.words, "no rows from a failed import may remain")
}

func TestDeleteAll_ReportsRemovedCount(t *testing.T) {
	repo := newFakeWordRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Import(context.Background(), strings.NewReader("headword,cefr\napple,A1\nrun,B1\n"))
	require.NoError(t, err)

	n, err := svc.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestStats(t *testing.T) {
	repo := newFakeWordRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Import(context.Background(), strings.NewReader("headword,cefr\napple,A1\nbanana,A1\nrun,B1\n"))
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)

	byLevel := map[string]int{}
	for _, lc := range stats.ByLevel {
		byLevel[lc.Level] = lc.Count
	}
	assert.Equal(t, map[string]int{"A1": 2, "B1": 1}, byLevel)
}
