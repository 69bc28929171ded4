package solver_test

import (
	"context"
	"fmt"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/cp/constraint"
	"github.com/Xabibax/choco-solver/pkg/cp/model"
	"github.com/Xabibax/choco-solver/pkg/cp/solver"
)

func TestSolver(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Solver Suite")
}

// queens builds the n-queens problem: one variable per column holding the
// queen's row.
func queens(n int) (*model.Model, []cp.Propagator) {
	m := model.New(fmt.Sprintf("%d-queens", n))
	q := m.IntVars("q", n, 1, n)
	var props []cp.Propagator
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			props = append(props,
				constraint.NewNeq(q[i], q[j]),
				constraint.NewNeqOffset(q[i], q[j], j-i),
				constraint.NewNeqOffset(q[i], q[j], i-j),
			)
		}
	}
	return m, props
}

// pigeonhole builds n+1 variables over n values, all different: always
// unsatisfiable.
func pigeonhole(n int) (*model.Model, []cp.Propagator) {
	m := model.New(fmt.Sprintf("pigeonhole-%d", n))
	vars := m.IntVars("p", n+1, 1, n)
	return m, constraint.AllDifferent(vars...)
}

var _ = Describe("Solver", func() {
	It("should solve a model with no constraints", func() {
		m := model.New("free")
		m.IntVar("x", 4, 9)

		sol, err := solver.New(m, nil).Solve(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(sol).To(Equal(cp.Solution{"x": 4}))
	})

	It("should solve six queens", func() {
		m, props := queens(6)

		sol, err := solver.New(m, props).Solve(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(sol).To(HaveLen(6))

		for i := 0; i < 6; i++ {
			for j := i + 1; j < 6; j++ {
				ri := sol[fmt.Sprintf("q[%d]", i)]
				rj := sol[fmt.Sprintf("q[%d]", j)]
				Expect(ri).ToNot(Equal(rj), "two queens share a row")
				Expect(ri - rj).ToNot(Equal(j - i), "two queens share a diagonal")
				Expect(ri - rj).ToNot(Equal(i - j), "two queens share a diagonal")
			}
		}
	})

	It("should leave the model's variables at the solution", func() {
		m, props := queens(4)

		_, err := solver.New(m, props).Solve(context.Background())
		Expect(err).ToNot(HaveOccurred())
		for _, v := range m.Vars() {
			Expect(v.IsInstantiated()).To(BeTrue())
		}
	})

	It("should prove the pigeonhole principle", func() {
		m, props := pigeonhole(3)

		sol, err := solver.New(m, props).Solve(context.Background())
		Expect(err).To(MatchError(solver.ErrNoSolution))
		Expect(sol).To(BeNil())
		Expect(m.Store().WorldIndex()).To(Equal(0))
	})

	It("should stop at the node limit", func() {
		m, props := queens(8)

		s := solver.New(m, props, solver.WithNodeLimit(2))
		sol, err := s.Solve(context.Background())
		Expect(err).To(MatchError(solver.ErrIncomplete))
		Expect(sol).To(BeNil())
		Expect(s.Nodes()).To(Equal(int64(2)))
	})

	It("should honor context cancellation", func() {
		m, props := queens(8)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := solver.New(m, props).Solve(ctx)
		Expect(err).To(MatchError(solver.ErrIncomplete))
	})

	It("should count decisions", func() {
		m, props := queens(5)

		s := solver.New(m, props)
		_, err := s.Solve(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Nodes()).To(BeNumerically(">", 0))
	})

	It("should solve with learning enabled", func() {
		m, props := queens(6)

		s := solver.New(m, props, solver.WithLearning())
		sol, err := s.Solve(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(sol).To(HaveLen(6))
	})

	It("should record nogoods while refuting an unsatisfiable model", func() {
		m, props := pigeonhole(4)

		s := solver.New(m, props, solver.WithLearning())
		_, err := s.Solve(context.Background())
		Expect(err).To(MatchError(solver.ErrNoSolution))
		Expect(s.Learned()).To(BeNumerically(">", 0))
	})
})

var _ = Describe("Portfolio", func() {
	It("should return the first solution found", func() {
		sol, err := solver.Portfolio(context.Background(), 4, func(seed int) (*model.Model, []cp.Propagator, []solver.Option) {
			m, props := queens(6)
			return m, props, nil
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(sol).To(HaveLen(6))
	})

	It("should settle unsatisfiability as soon as one worker proves it", func() {
		sol, err := solver.Portfolio(context.Background(), 3, func(seed int) (*model.Model, []cp.Propagator, []solver.Option) {
			m, props := pigeonhole(3)
			return m, props, nil
		})
		Expect(err).To(MatchError(solver.ErrNoSolution))
		Expect(sol).To(BeNil())
	})

	It("should report an incomplete search when every worker hits its limit", func() {
		sol, err := solver.Portfolio(context.Background(), 2, func(seed int) (*model.Model, []cp.Propagator, []solver.Option) {
			m, props := queens(8)
			return m, props, []solver.Option{solver.WithNodeLimit(1)}
		})
		Expect(err).To(MatchError(solver.ErrIncomplete))
		Expect(sol).To(BeNil())
	})
})
