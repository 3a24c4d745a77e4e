package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0dillon/HNG1/internal/ir"
	"github.com/0dillon/HNG1/internal/queryir"
	"github.com/0dillon/HNG1/internal/store"
	"github.com/0dillon/HNG1/internal/testutil"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := store.Open(dir + "/test.db")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// engines returns an engine over each backend. The memory backend exercises
// the List + filter path, SQLite the Querier pushdown.
func engines(t *testing.T) map[string]*Engine {
	t.Helper()
	return map[string]*Engine{
		"memory": New(store.NewMemory(), WithClock(testutil.NewStepClock(testutil.Epoch, time.Second))),
		"sqlite": New(setupTestStore(t), WithClock(testutil.NewStepClock(testutil.Epoch, time.Second))),
	}
}

func seed(t *testing.T, e *Engine, values ...string) {
	t.Helper()
	for _, v := range values {
		_, err := e.Create(context.Background(), v)
		require.NoError(t, err, "seed %q", v)
	}
}

func valuesOf(recs []ir.StringRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Value)
	}
	return out
}

func TestEngine_New(t *testing.T) {
	e := New(store.NewMemory())

	assert.NotNil(t, e.repo)
	assert.IsType(t, SystemClock{}, e.clock)
	assert.NotNil(t, e.logger)
}

func TestEngine_Create(t *testing.T) {
	for name, e := range engines(t) {
		t.Run(name, func(t *testing.T) {
			rec, err := e.Create(context.Background(), "racecar")
			require.NoError(t, err)

			assert.Equal(t, ir.Fingerprint("racecar"), rec.ID)
			assert.Equal(t, "racecar", rec.Value)
			assert.Equal(t, 7, rec.Properties.Length)
			assert.True(t, rec.Properties.IsPalindrome)
			assert.Equal(t, rec.ID, rec.Properties.SHA256Hash)
			assert.Equal(t, "2025-01-01T00:00:00Z", rec.CreatedAt)
		})
	}
}

func TestEngine_CreateDuplicateConflicts(t *testing.T) {
	for name, e := range engines(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first, err := e.Create(ctx, "hello")
			require.NoError(t, err)

			_, err = e.Create(ctx, "hello")
			require.Error(t, err)
			assert.True(t, IsConflict(err))

			var engErr *Error
			require.ErrorAs(t, err, &engErr)
			assert.Equal(t, "String already exists", engErr.Message)

			// The original record is untouched.
			got, err := e.Get(ctx, "hello")
			require.NoError(t, err)
			assert.Equal(t, first, got)
		})
	}
}

func TestEngine_ConcurrentCreateSingleWinner(t *testing.T) {
	for name, e := range engines(t) {
		t.Run(name, func(t *testing.T) {
			const goroutines = 20
			var wg sync.WaitGroup
			var mu sync.Mutex
			var created, conflicts int

			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := e.Create(context.Background(), "same value")
					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						created++
					case IsConflict(err):
						conflicts++
					default:
						t.Errorf("unexpected error: %v", err)
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, 1, created)
			assert.Equal(t, goroutines-1, conflicts)
		})
	}
}

func TestEngine_GetNotFound(t *testing.T) {
	for name, e := range engines(t) {
		t.Run(name, func(t *testing.T) {
			_, err := e.Get(context.Background(), "never stored")
			require.Error(t, err)
			assert.True(t, IsNotFound(err))
			assert.Equal(t, "String not found", err.(*Error).Message)
		})
	}
}

func TestEngine_DeleteThenGet(t *testing.T) {
	for name, e := range engines(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seed(t, e, "abc")

			require.NoError(t, e.Delete(ctx, "abc"))

			_, err := e.Get(ctx, "abc")
			assert.True(t, IsNotFound(err))

			err = e.Delete(ctx, "abc")
			assert.True(t, IsNotFound(err), "second delete must report not found")
		})
	}
}

func TestEngine_DeleteThenRecreate(t *testing.T) {
	for name, e := range engines(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seed(t, e, "abc")
			require.NoError(t, e.Delete(ctx, "abc"))

			_, err := e.Create(ctx, "abc")
			assert.NoError(t, err)
		})
	}
}

func TestEngine_List(t *testing.T) {
	for name, e := range engines(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seed(t, e, "racecar", "hello world", "a", "noon", "zebra crossing here")

			tests := []struct {
				name     string
				criteria queryir.Criteria
				want     []string
			}{
				{
					name: "no filters",
					want: []string{"racecar", "hello world", "a", "noon", "zebra crossing here"},
				},
				{
					name:     "palindromes",
					criteria: queryir.Criteria{IsPalindrome: queryir.Bool(true)},
					want:     []string{"racecar", "a", "noon"},
				},
				{
					name:     "length range",
					criteria: queryir.Criteria{MinLength: queryir.Int(4), MaxLength: queryir.Int(7)},
					want:     []string{"racecar", "noon"},
				},
				{
					name:     "word count",
					criteria: queryir.Criteria{WordCount: queryir.Int(2)},
					want:     []string{"hello world"},
				},
				{
					name:     "contains character",
					criteria: queryir.Criteria{ContainsCharacter: queryir.String("z")},
					want:     []string{"zebra crossing here"},
				},
				{
					name:     "contradictory bounds",
					criteria: queryir.Criteria{MinLength: queryir.Int(10), MaxLength: queryir.Int(2)},
					want:     []string{},
				},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got, err := e.List(ctx, tt.criteria)
					require.NoError(t, err)
					assert.Equal(t, tt.want, valuesOf(got))
				})
			}
		})
	}
}

func TestEngine_ListInvalidCharacter(t *testing.T) {
	for name, e := range engines(t) {
		t.Run(name, func(t *testing.T) {
			_, err := e.List(context.Background(), queryir.Criteria{ContainsCharacter: queryir.String("ab")})
			require.Error(t, err)
			assert.True(t, IsInvalidArgument(err))
			assert.Equal(t, "contains_character must be a single character", err.(*Error).Message)
		})
	}
}

func TestEngine_Interpret(t *testing.T) {
	for name, e := range engines(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, e, "racecar", "kayak", "never odd or even", "hello")

			interp, recs, err := e.Interpret(context.Background(), "all single word palindromic strings")
			require.NoError(t, err)

			assert.Equal(t, "all single word palindromic strings", interp.Original)
			assert.Equal(t, queryir.Criteria{
				WordCount:    queryir.Int(1),
				IsPalindrome: queryir.Bool(true),
			}, interp.ParsedFilters)
			assert.Equal(t, []string{"racecar", "kayak"}, valuesOf(recs))
		})
	}
}

func TestEngine_InterpretEmptyQuery(t *testing.T) {
	e := New(store.NewMemory())

	_, _, err := e.Interpret(context.Background(), "")
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
	assert.Equal(t, "Missing query parameter", err.(*Error).Message)
}

func TestEngine_Count(t *testing.T) {
	for name, e := range engines(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			n, err := e.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, n)

			seed(t, e, "a", "b", "c")
			n, err = e.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 3, n)
		})
	}
}

// failingRepo fails every operation.
type failingRepo struct{ err error }

func (r failingRepo) Create(context.Context, ir.StringRecord) (ir.StringRecord, bool, error) {
	return ir.StringRecord{}, false, r.err
}
func (r failingRepo) Get(context.Context, string) (ir.StringRecord, error) {
	return ir.StringRecord{}, r.err
}
func (r failingRepo) List(context.Context) ([]ir.StringRecord, error) { return nil, r.err }
func (r failingRepo) Delete(context.Context, string) error            { return r.err }

func TestEngine_StoreFailuresAreInternal(t *testing.T) {
	cause := errors.New("disk on fire")
	e := New(failingRepo{err: cause})
	ctx := context.Background()

	_, err := e.Create(ctx, "x")
	assert.Equal(t, ErrCodeInternal, CodeOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error", err.(*Error).Message)

	_, err = e.Get(ctx, "x")
	assert.Equal(t, ErrCodeInternal, CodeOf(err))

	err = e.Delete(ctx, "x")
	assert.Equal(t, ErrCodeInternal, CodeOf(err))

	_, err = e.List(ctx, queryir.Criteria{})
	assert.Equal(t, ErrCodeInternal, CodeOf(err))

	_, err = e.Count(ctx)
	assert.Equal(t, ErrCodeInternal, CodeOf(err))
}
