package jsonvalue_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/shibotong/OllamaKit/pkg/jsonvalue"
)

var _ = Describe("Codec", func() {
	Describe("MarshalJSON", func() {
		It("writes scalar literals", func() {
			Expect(jsonvalue.Null().String()).To(Equal("null"))
			Expect(jsonvalue.Bool(true).String()).To(Equal("true"))
			Expect(jsonvalue.Int(-7).String()).To(Equal("-7"))
			Expect(jsonvalue.Float(0.25).String()).To(Equal("0.25"))
			Expect(jsonvalue.String("hi").String()).To(Equal(`"hi"`))
		})

		It("escapes strings", func() {
			Expect(jsonvalue.String("a\"b\n").String()).To(Equal(`"a\"b\n"`))
		})

		It("writes empty containers", func() {
			Expect(jsonvalue.Array().String()).To(Equal("[]"))
			Expect(jsonvalue.Object().String()).To(Equal("{}"))
		})

		It("writes object members in insertion order", func() {
			v := jsonvalue.Object(
				jsonvalue.Pair("z", jsonvalue.Int(1)),
				jsonvalue.Pair("a", jsonvalue.Int(2)),
			)

			Expect(v.String()).To(Equal(`{"z":1,"a":2}`))
		})

		It("never omits null members", func() {
			v := jsonvalue.Object(jsonvalue.Pair("maybe", jsonvalue.Null()))

			Expect(v.String()).To(Equal(`{"maybe":null}`))
		})

		It("round-trips through encoding/json as a field", func() {
			wrapper := struct {
				Format jsonvalue.Value `json:"format"`
			}{
				Format: jsonvalue.Object(jsonvalue.Pair("type", jsonvalue.String("object"))),
			}

			out, err := json.Marshal(wrapper)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(Equal(`{"format":{"type":"object"}}`))
		})
	})

	Describe("Parse", func() {
		It("preserves document key order", func() {
			v, err := jsonvalue.Parse([]byte(`{"z":1,"a":2,"m":3}`))

			Expect(err).NotTo(HaveOccurred())
			Expect(v.String()).To(Equal(`{"z":1,"a":2,"m":3}`))
		})

		It("keeps integers as integers", func() {
			v, err := jsonvalue.Parse([]byte(`9007199254740993`))

			Expect(err).NotTo(HaveOccurred())
			i, ok := v.AsInt()
			Expect(ok).To(BeTrue())
			Expect(i).To(Equal(int64(9007199254740993)))
		})

		It("rejects duplicate object keys", func() {
			_, err := jsonvalue.Parse([]byte(`{"a":1,"a":2}`))

			Expect(err).To(MatchError(ContainSubstring(`duplicate object key "a"`)))
		})

		It("rejects trailing data", func() {
			_, err := jsonvalue.Parse([]byte(`{} {}`))

			Expect(err).To(HaveOccurred())
		})

		It("rejects malformed input", func() {
			_, err := jsonvalue.Parse([]byte(`{"a":`))

			Expect(err).To(HaveOccurred())
		})

		It("round-trips deeply nested structures", func() {
			doc := []byte(`{"a":[{"b":{"c":[1,2,{"d":{"e":[null,true,"x",0.5]}}]}}],"f":{}}`)

			v, err := jsonvalue.Parse(doc)
			Expect(err).NotTo(HaveOccurred())

			out, err := v.MarshalJSON()
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(Equal(string(doc)))

			again, err := jsonvalue.Parse(out)
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Equal(v)).To(BeTrue())
		})
	})

	Describe("UnmarshalJSON", func() {
		It("decodes into a struct field", func() {
			var wrapper struct {
				Think jsonvalue.Value `json:"think"`
			}

			err := json.Unmarshal([]byte(`{"think":{"effort":"high"}}`), &wrapper)
			Expect(err).NotTo(HaveOccurred())

			effort, ok := wrapper.Think.Get("effort")
			Expect(ok).To(BeTrue())
			Expect(effort.Equal(jsonvalue.String("high"))).To(BeTrue())
		})
	})
})
