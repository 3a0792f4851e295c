package history_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/shibotong/OllamaKit/pkg/history"
	"github.com/shibotong/OllamaKit/pkg/llm"
)

func makeTurn(model, prompt, reply string) *llm.ConversationTurn {
	return &llm.ConversationTurn{
		Request: &llm.ChatRequest{
			Model:    model,
			Messages: []llm.Message{llm.UserMessage(prompt)},
		},
		Response: &llm.ChatResponse{
			Model:   model,
			Message: llm.AssistantMessage(reply),
			Done:    true,
		},
	}
}

// storeBehavior runs the Store contract tests against any implementation.
func storeBehavior(newStore func() history.Store) {
	var (
		store history.Store
		ctx   context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = newStore()
	})

	AfterEach(func() {
		if store != nil {
			store.Close()
		}
	})

	Describe("Append and Get", func() {
		It("stores and retrieves a turn", func() {
			id, err := store.Append(ctx, makeTurn("llama3", "hi", "hello"))
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(BeNumerically(">", 0))

			stored, err := store.Get(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Model).To(Equal("llama3"))
			Expect(stored.Turn.Request.Messages).To(HaveLen(1))
			Expect(stored.Turn.Request.Messages[0].Content).To(Equal("hi"))
			Expect(stored.Turn.Response.Message.Content).To(Equal("hello"))
			Expect(stored.CreatedAt).NotTo(BeZero())
		})

		It("round-trips generation options", func() {
			temp := 0.2
			turn := makeTurn("llama3", "hi", "hello")
			turn.Request.Options = &llm.Options{Temperature: &temp}

			id, err := store.Append(ctx, turn)
			Expect(err).NotTo(HaveOccurred())

			stored, err := store.Get(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Turn.Request.Options).NotTo(BeNil())
			Expect(*stored.Turn.Request.Options.Temperature).To(Equal(0.2))
		})

		It("assigns increasing ids", func() {
			first, err := store.Append(ctx, makeTurn("llama3", "a", "A"))
			Expect(err).NotTo(HaveOccurred())

			second, err := store.Append(ctx, makeTurn("llama3", "b", "B"))
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(BeNumerically(">", first))
		})

		It("returns ErrNotFound for a missing id", func() {
			_, err := store.Get(ctx, 9999)
			Expect(err).To(HaveOccurred())

			var notFound history.ErrNotFound
			Expect(err).To(BeAssignableToTypeOf(notFound))
		})

		It("rejects nil turns", func() {
			_, err := store.Append(ctx, nil)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("nil turn"))
		})
	})

	Describe("List", func() {
		It("returns turns newest first", func() {
			_, err := store.Append(ctx, makeTurn("llama3", "first", "1"))
			Expect(err).NotTo(HaveOccurred())
			_, err = store.Append(ctx, makeTurn("llama3", "second", "2"))
			Expect(err).NotTo(HaveOccurred())

			turns, err := store.List(ctx, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(2))
			Expect(turns[0].Turn.Request.Messages[0].Content).To(Equal("second"))
			Expect(turns[1].Turn.Request.Messages[0].Content).To(Equal("first"))
		})

		It("honors the limit", func() {
			for _, p := range []string{"a", "b", "c"} {
				_, err := store.Append(ctx, makeTurn("llama3", p, p))
				Expect(err).NotTo(HaveOccurred())
			}

			turns, err := store.List(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(2))
			Expect(turns[0].Turn.Request.Messages[0].Content).To(Equal("c"))
		})

		It("is empty for a fresh store", func() {
			turns, err := store.List(ctx, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(BeEmpty())
		})
	})

	Describe("Count", func() {
		It("counts stored turns", func() {
			n, err := store.Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(0)))

			_, err = store.Append(ctx, makeTurn("llama3", "hi", "hello"))
			Expect(err).NotTo(HaveOccurred())

			n, err = store.Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(1)))
		})
	})
}

var _ = Describe("MemoryStore", func() {
	storeBehavior(func() history.Store {
		return history.NewMemoryStore()
	})
})

var _ = Describe("SQLiteStore", func() {
	storeBehavior(func() history.Store {
		store, err := history.NewSQLiteStore(":memory:")
		Expect(err).NotTo(HaveOccurred())
		return store
	})

	It("creates a database file on disk", func() {
		tmpDir := GinkgoT().TempDir()
		dbPath := filepath.Join(tmpDir, "turns.db")

		store, err := history.NewSQLiteStore(dbPath)
		Expect(err).NotTo(HaveOccurred())
		defer store.Close()

		_, err = os.Stat(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	It("persists turns across reopen", func() {
		tmpDir := GinkgoT().TempDir()
		dbPath := filepath.Join(tmpDir, "turns.db")
		ctx := context.Background()

		store, err := history.NewSQLiteStore(dbPath)
		Expect(err).NotTo(HaveOccurred())

		id, err := store.Append(ctx, makeTurn("llama3", "hi", "hello"))
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Close()).To(Succeed())

		reopened, err := history.NewSQLiteStore(dbPath)
		Expect(err).NotTo(HaveOccurred())
		defer reopened.Close()

		stored, err := reopened.Get(ctx, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.Turn.Response.Message.Content).To(Equal("hello"))
	})
})
