package jsonvalue_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/shibotong/OllamaKit/pkg/jsonvalue"
)

var _ = Describe("Value", func() {
	Describe("construction", func() {
		It("defaults to null", func() {
			var v jsonvalue.Value

			Expect(v.Kind()).To(Equal(jsonvalue.KindNull))
			Expect(v.IsNull()).To(BeTrue())
		})

		It("holds booleans", func() {
			b, ok := jsonvalue.Bool(true).AsBool()

			Expect(ok).To(BeTrue())
			Expect(b).To(BeTrue())
		})

		It("distinguishes integer and float numbers", func() {
			i, ok := jsonvalue.Int(42).AsInt()
			Expect(ok).To(BeTrue())
			Expect(i).To(Equal(int64(42)))

			_, ok = jsonvalue.Float(0.5).AsInt()
			Expect(ok).To(BeFalse())

			f, ok := jsonvalue.Float(0.5).AsFloat()
			Expect(ok).To(BeTrue())
			Expect(f).To(Equal(0.5))
		})

		It("holds strings", func() {
			s, ok := jsonvalue.String("hello").AsString()

			Expect(ok).To(BeTrue())
			Expect(s).To(Equal("hello"))
		})

		It("preserves array element order", func() {
			v := jsonvalue.Array(jsonvalue.Int(1), jsonvalue.Int(2), jsonvalue.Int(3))

			items := v.Items()
			Expect(items).To(HaveLen(3))
			Expect(items[0].Equal(jsonvalue.Int(1))).To(BeTrue())
			Expect(items[2].Equal(jsonvalue.Int(3))).To(BeTrue())
		})

		It("preserves object insertion order", func() {
			v := jsonvalue.Object(
				jsonvalue.Pair("z", jsonvalue.Int(1)),
				jsonvalue.Pair("a", jsonvalue.Int(2)),
			)

			members := v.Members()
			Expect(members).To(HaveLen(2))
			Expect(members[0].Key).To(Equal("z"))
			Expect(members[1].Key).To(Equal("a"))
		})

		It("keeps object keys unique, last write wins in place", func() {
			v := jsonvalue.Object(
				jsonvalue.Pair("a", jsonvalue.Int(1)),
				jsonvalue.Pair("b", jsonvalue.Int(2)),
				jsonvalue.Pair("a", jsonvalue.Int(3)),
			)

			members := v.Members()
			Expect(members).To(HaveLen(2))
			Expect(members[0].Key).To(Equal("a"))

			got, ok := v.Get("a")
			Expect(ok).To(BeTrue())
			Expect(got.Equal(jsonvalue.Int(3))).To(BeTrue())
		})
	})

	Describe("Equal", func() {
		It("is structural for nested values", func() {
			a := jsonvalue.Object(
				jsonvalue.Pair("list", jsonvalue.Array(jsonvalue.Int(1), jsonvalue.String("x"))),
				jsonvalue.Pair("flag", jsonvalue.Bool(false)),
			)
			b := jsonvalue.Object(
				jsonvalue.Pair("list", jsonvalue.Array(jsonvalue.Int(1), jsonvalue.String("x"))),
				jsonvalue.Pair("flag", jsonvalue.Bool(false)),
			)

			Expect(a.Equal(b)).To(BeTrue())
		})

		It("ignores member order for objects", func() {
			a := jsonvalue.Object(
				jsonvalue.Pair("x", jsonvalue.Int(1)),
				jsonvalue.Pair("y", jsonvalue.Int(2)),
			)
			b := jsonvalue.Object(
				jsonvalue.Pair("y", jsonvalue.Int(2)),
				jsonvalue.Pair("x", jsonvalue.Int(1)),
			)

			Expect(a.Equal(b)).To(BeTrue())
		})

		It("respects element order for arrays", func() {
			a := jsonvalue.Array(jsonvalue.Int(1), jsonvalue.Int(2))
			b := jsonvalue.Array(jsonvalue.Int(2), jsonvalue.Int(1))

			Expect(a.Equal(b)).To(BeFalse())
		})

		It("compares numbers numerically across int and float", func() {
			Expect(jsonvalue.Int(2).Equal(jsonvalue.Float(2))).To(BeTrue())
			Expect(jsonvalue.Int(2).Equal(jsonvalue.Float(2.5))).To(BeFalse())
		})

		It("distinguishes kinds", func() {
			Expect(jsonvalue.Null().Equal(jsonvalue.Bool(false))).To(BeFalse())
			Expect(jsonvalue.String("1").Equal(jsonvalue.Int(1))).To(BeFalse())
		})
	})

	Describe("FromAny", func() {
		It("converts decoded JSON shapes", func() {
			v, err := jsonvalue.FromAny(map[string]any{
				"name":  "search",
				"count": 3,
				"ratio": 0.25,
				"tags":  []any{"a", nil, true},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(v.Kind()).To(Equal(jsonvalue.KindObject))

			tags, ok := v.Get("tags")
			Expect(ok).To(BeTrue())
			Expect(tags.Items()).To(HaveLen(3))
			Expect(tags.Items()[1].IsNull()).To(BeTrue())
		})

		It("sorts map keys for deterministic output", func() {
			v, err := jsonvalue.FromAny(map[string]any{"b": 1, "a": 2, "c": 3})

			Expect(err).NotTo(HaveOccurred())
			members := v.Members()
			Expect(members[0].Key).To(Equal("a"))
			Expect(members[1].Key).To(Equal("b"))
			Expect(members[2].Key).To(Equal("c"))
		})

		It("rejects shapes outside the six JSON kinds", func() {
			_, err := jsonvalue.FromAny(struct{ X int }{X: 1})

			var unsupported *jsonvalue.UnsupportedTypeError
			Expect(err).To(HaveOccurred())
			Expect(errors.As(err, &unsupported)).To(BeTrue())
		})

		It("rejects unsupported nested values", func() {
			_, err := jsonvalue.FromAny(map[string]any{"ch": make(chan int)})

			Expect(err).To(HaveOccurred())
		})
	})
})
