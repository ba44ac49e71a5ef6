package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/authz"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	jokeRepo "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/joke/repository"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/like/repository"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/testutil"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/apperror"
	"github.com/rs/zerolog"
)

type fixture struct {
	svc   LikeService
	alice authz.Identity
	bob   authz.Identity
	joke  *entity.Joke
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "Alice", "a@x.com", entity.RoleUser)
	bob := testutil.CreateUser(t, db, "Bob", "b@x.com", entity.RoleUser)

	return &fixture{
		svc:   NewLikeService(repository.NewLikeRepository(db), jokeRepo.NewJokeRepository(db), zerolog.Nop()),
		alice: authz.Identity{ID: alice.ID, Username: "Alice"},
		bob:   authz.Identity{ID: bob.ID, Username: "Bob"},
		joke:  testutil.CreateJoke(t, db, alice.ID, "Why", "Because"),
	}
}

func TestLikeCountsDistinctUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	likes, err := f.svc.Like(ctx, f.alice, f.joke.ID)
	if err != nil || likes != 1 {
		t.Fatalf("Like() = %d, %v", likes, err)
	}
	likes, err = f.svc.Like(ctx, f.bob, f.joke.ID)
	if err != nil || likes != 2 {
		t.Fatalf("Like() = %d, %v", likes, err)
	}
}

func TestLikeTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Like(ctx, f.alice, f.joke.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Like(ctx, f.alice, f.joke.ID); !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("second Like() error = %v, want conflict", err)
	}

	liked, err := f.svc.CheckLiked(ctx, f.alice, f.joke.ID)
	if err != nil || !liked {
		t.Fatalf("CheckLiked() = %v, %v", liked, err)
	}
}

func TestConcurrentLikesFromSameUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Like(ctx, f.alice, f.joke.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, apperror.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || conflicts != attempts-1 {
		t.Fatalf("ok=%d conflicts=%d", ok, conflicts)
	}
}

func TestLikeMissingJoke(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Like(context.Background(), f.alice, 9999); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Like() error = %v, want not found", err)
	}
}

func TestUnlike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Unlike(ctx, f.alice, f.joke.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Unlike() without like error = %v", err)
	}

	if _, err := f.svc.Like(ctx, f.alice, f.joke.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Like(ctx, f.bob, f.joke.ID); err != nil {
		t.Fatal(err)
	}

	likes, err := f.svc.Unlike(ctx, f.alice, f.joke.ID)
	if err != nil || likes != 1 {
		t.Fatalf("Unlike() = %d, %v", likes, err)
	}
	liked, err := f.svc.CheckLiked(ctx, f.alice, f.joke.ID)
	if err != nil || liked {
		t.Fatalf("CheckLiked() = %v, %v", liked, err)
	}
}

func TestTrackShare(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.svc.TrackShare(ctx, f.joke.ID); err != nil {
		t.Fatalf("TrackShare() error = %v", err)
	}
	if err := f.svc.TrackShare(ctx, 9999); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("TrackShare(missing) error = %v", err)
	}
}
