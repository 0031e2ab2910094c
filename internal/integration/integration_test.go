package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"vocab-quiz/internal/app"
	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/infra/memory"
	pgstore "vocab-quiz/internal/infra/postgres"
	pgmigrations "vocab-quiz/internal/infra/postgres/migrations"
	infraredis "vocab-quiz/internal/infra/redis"
	"vocab-quiz/internal/pronounce"
	"vocab-quiz/internal/quiz"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestQuizOverPostgresAndRedis(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedBank(t, ctx, pgURL, sampleBank())

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	fallback := memory.NewStaticBankLoader(map[string]domain.WordBank{
		"CH2": {Entries: []domain.WordEntry{{Word: "run", Definitions: []domain.Definition{{PartOfSpeech: "verb", Text: "move fast"}}}}},
	})
	loader := app.NewFallbackRepository(pgstore.NewBankLoader(pool), fallback)

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	banks := infraredis.NewBankRepository(redisClient, loader, 5*time.Minute)
	service := app.NewQuizService(banks, pronounce.NewBuilder(""), []string{"CH1", "CH2"})

	session, err := service.StartSession(ctx, "CH1")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	seen := map[string]bool{}
	for session.Phase() != quiz.Completed {
		entry, err := session.Current()
		if err != nil {
			t.Fatalf("current: %v", err)
		}
		if seen[entry.Word] {
			t.Fatalf("word %s presented twice", entry.Word)
		}
		seen[entry.Word] = true
		out, err := session.SubmitAnswer(strings.ToUpper(entry.Word))
		if err != nil || out.Kind != quiz.Correct {
			t.Fatalf("expected correct for %s, got %+v (%v)", entry.Word, out, err)
		}
		if err := session.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 words, saw %d", len(seen))
	}

	if n, err := redisClient.Exists(ctx, "wordbank:CH1").Result(); err != nil || n != 1 {
		t.Fatalf("expected CH1 cached in redis, got %d (%v)", n, err)
	}

	if err := service.SwitchChapter(ctx, session, "CH2"); err != nil {
		t.Fatalf("switch to fallback chapter: %v", err)
	}
	if session.Chapter() != "CH2" || session.Position() != 0 {
		t.Fatalf("unexpected session after switch: %+v", session.Snapshot())
	}

	err = service.SwitchChapter(ctx, session, "CH5")
	var le *domain.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected load error for missing chapter, got %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedBank(t *testing.T, ctx context.Context, dsn string, bank domain.WordBank) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	writer := pgstore.NewBankWriter(db)
	if err := writer.SaveBank(ctx, bank); err != nil {
		t.Fatalf("save bank: %v", err)
	}
	// a second save replaces rather than duplicates
	if err := writer.SaveBank(ctx, bank); err != nil {
		t.Fatalf("save bank again: %v", err)
	}
	chapters, err := writer.Chapters(ctx)
	if err != nil {
		t.Fatalf("list chapters: %v", err)
	}
	if len(chapters) != 1 || chapters[0] != bank.Chapter {
		t.Fatalf("unexpected stored chapters %v", chapters)
	}
}

func sampleBank() domain.WordBank {
	return domain.WordBank{
		Chapter: "CH1",
		Entries: []domain.WordEntry{
			{Word: "cat", Definitions: []domain.Definition{{PartOfSpeech: "noun", Text: "an animal"}}, Pronunciation: "cat"},
			{Word: "sun", Definitions: []domain.Definition{{PartOfSpeech: "noun", Text: "a star"}}},
			{Word: "run", Definitions: []domain.Definition{{PartOfSpeech: "verb", Text: "move fast"}}},
		},
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
