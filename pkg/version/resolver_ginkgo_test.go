package version

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flanksource/dotnet-install/pkg/types"
)

var _ = Describe("Resolver", func() {
	var source *mockIndexSource
	var resolver *Resolver

	BeforeEach(func() {
		source = &mockIndexSource{channels: map[string]string{
			"3": "3.1",
			"6": "6.0",
			"8": "8.0",
		}}
		resolver = NewResolver(source)
	})

	Describe("channel resolution", func() {
		It("should resolve a bare major against the index in document order", func() {
			resolved, err := resolver.Resolve(context.Background(), "3")

			Expect(err).ToNot(HaveOccurred())
			Expect(resolved.Kind).To(Equal(types.KindChannel))
			Expect(resolved.Value).To(Equal("3.1"))
			Expect(resolved.SupportsQuality).To(BeFalse())
			Expect(source.calls).To(Equal(1))
		})

		It("should not fetch the index for an exact channel", func() {
			resolved, err := resolver.Resolve(context.Background(), "8.0")

			Expect(err).ToNot(HaveOccurred())
			Expect(resolved.Value).To(Equal("8.0"))
			Expect(source.calls).To(BeZero())
		})

		It("should not fetch the index for an exact version", func() {
			resolved, err := resolver.Resolve(context.Background(), "8.0.100")

			Expect(err).ToNot(HaveOccurred())
			Expect(resolved.Kind).To(Equal(types.KindExactVersion))
			Expect(source.calls).To(BeZero())
		})
	})

	Describe("quality support", func() {
		It("should be gated on the numeric major version", func() {
			for specifier, want := range map[string]bool{
				"5.0": false,
				"6.0": true,
				"8.0": true,
			} {
				resolved, err := resolver.Resolve(context.Background(), specifier)
				Expect(err).ToNot(HaveOccurred())
				Expect(resolved.SupportsQuality).To(Equal(want), "specifier %s", specifier)
			}
		})

		It("should never apply to exact versions", func() {
			resolved, err := resolver.Resolve(context.Background(), "8.0.100")

			Expect(err).ToNot(HaveOccurred())
			Expect(resolved.SupportsQuality).To(BeFalse())
		})
	})
})
