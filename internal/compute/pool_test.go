package compute_test

import (
	"errors"
	"runtime"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/partsim/internal/compute"
)

type chunk struct{ worker, start, end int }

func collect(p *compute.Pool, n int) []chunk {
	var mu sync.Mutex
	var out []chunk
	err := p.For(n, func(worker, start, end int) error {
		mu.Lock()
		out = append(out, chunk{worker, start, end})
		mu.Unlock()
		return nil
	})
	Expect(err).NotTo(HaveOccurred())
	return out
}

var _ = Describe("Pool", func() {
	It("defaults to one worker per cpu", func() {
		Expect(compute.NewPool(0).Workers()).To(Equal(runtime.NumCPU()))
		Expect(compute.NewPool(-3).Workers()).To(Equal(runtime.NumCPU()))
		Expect(compute.NewPool(6).Workers()).To(Equal(6))
	})

	It("never uses more chunks than items", func() {
		p := compute.NewPool(8)
		Expect(p.Chunks(0)).To(Equal(0))
		Expect(p.Chunks(3)).To(Equal(3))
		Expect(p.Chunks(100)).To(Equal(8))
	})

	It("does not call fn for an empty range", func() {
		Expect(collect(compute.NewPool(4), 0)).To(BeEmpty())
	})

	DescribeTable("covers every index exactly once",
		func(workers, n int) {
			seen := make([]int, n)
			for _, c := range collect(compute.NewPool(workers), n) {
				Expect(c.start).To(BeNumerically("<", c.end))
				for i := c.start; i < c.end; i++ {
					seen[i]++
				}
			}
			for i, count := range seen {
				Expect(count).To(Equal(1), "index %d", i)
			}
		},
		Entry("single worker", 1, 17),
		Entry("even split", 4, 100),
		Entry("uneven split", 4, 10),
		Entry("more workers than items", 16, 5),
		Entry("one item", 8, 1),
	)

	It("hands chunk k to worker k in index order", func() {
		chunks := collect(compute.NewPool(4), 103)
		Expect(chunks).To(HaveLen(4))

		byWorker := make(map[int]chunk)
		for _, c := range chunks {
			byWorker[c.worker] = c
		}
		for w := 0; w < 4; w++ {
			Expect(byWorker).To(HaveKey(w))
			if w > 0 {
				Expect(byWorker[w].start).To(Equal(byWorker[w-1].end))
			}
		}
		Expect(byWorker[0].start).To(Equal(0))
		Expect(byWorker[3].end).To(Equal(103))
	})

	It("returns an error from any chunk after all chunks finish", func() {
		boom := errors.New("boom")
		var mu sync.Mutex
		finished := 0

		err := compute.NewPool(4).For(40, func(worker, start, end int) error {
			mu.Lock()
			finished++
			mu.Unlock()
			if worker == 2 {
				return boom
			}
			return nil
		})

		Expect(err).To(MatchError(boom))
		Expect(finished).To(Equal(4))
	})
})
