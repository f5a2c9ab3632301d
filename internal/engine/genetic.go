package engine

import (
	"math/rand"
	"sort"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// GeneticConfig holds parameters for the genetic ordering search.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           int64
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 40,
		Generations:    60,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           42,
	}
}

// GeneticConfigFor scales the defaults to the input count, overriding them
// with any non-zero values from settings.
func GeneticConfigFor(n int, settings model.GeneticSettings) GeneticConfig {
	config := DefaultGeneticConfig()

	// Scale generations for larger problems
	if n > 50 {
		config.Generations = 100
	}
	if n > 200 {
		config.Generations = 150
		config.PopulationSize = 60
	}

	if settings.PopulationSize > 0 {
		config.PopulationSize = settings.PopulationSize
	}
	if settings.Generations > 0 {
		config.Generations = settings.Generations
	}
	if settings.MutationRate > 0 {
		config.MutationRate = settings.MutationRate
	}
	if settings.Seed != 0 {
		config.Seed = settings.Seed
	}
	return config
}

// chromosome is a candidate insertion order: a permutation of input indices.
type chromosome struct {
	order   []int
	origin  string // ordering name for seeded chromosomes
	fitness float64
}

// geneticOptimizer evolves insertion orders for a fixed packer.
type geneticOptimizer[K any] struct {
	config    GeneticConfig
	inputs    []model.RectInput[K]
	packer    Packer
	inputArea uint64
	rng       *rand.Rand
}

func newGeneticOptimizer[K any](config GeneticConfig, inputs []model.RectInput[K], p Packer) *geneticOptimizer[K] {
	g := &geneticOptimizer[K]{
		config: config,
		inputs: inputs,
		packer: p,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
	for _, in := range inputs {
		g.inputArea += in.Size.Area()
	}
	return g
}

// optimize runs the genetic algorithm and returns the best chromosome.
func (g *geneticOptimizer[K]) optimize() chromosome {
	population := g.initPopulation()
	for i := range population {
		population[i].fitness = g.evaluate(population[i])
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		// Sort by fitness descending (higher is better)
		sort.SliceStable(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		// Elitism: carry over the best individuals unchanged
		eliteCount := min(g.config.EliteCount, len(population))
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, g.copyChromosome(population[i]))
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)

			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)

			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
	}

	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
	return population[0]
}

// initPopulation seeds the population with the heuristic orderings and fills
// the rest with random permutations.
func (g *geneticOptimizer[K]) initPopulation() []chromosome {
	n := len(g.inputs)
	size := max(g.config.PopulationSize, len(Orderings))
	population := make([]chromosome, 0, size)

	for _, o := range Orderings {
		population = append(population, chromosome{order: g.heuristicOrder(o), origin: o.Name})
	}
	for len(population) < size {
		population = append(population, chromosome{order: g.rng.Perm(n), origin: "genetic"})
	}
	return population
}

// heuristicOrder returns input indices sorted by o.
func (g *geneticOptimizer[K]) heuristicOrder(o Ordering) []int {
	indices := make([]int, len(g.inputs))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return o.Compare(g.inputs[indices[i]].Size, g.inputs[indices[j]].Size) < 0
	})
	return indices
}

// evaluate scores a chromosome as input area divided by the used area of
// all atlases. Unplaceable orders score zero.
func (g *geneticOptimizer[K]) evaluate(c chromosome) float64 {
	_, used, err := PackOrdered(g.decode(c), g.packer)
	if err != nil || used == 0 {
		return 0
	}
	return float64(g.inputArea) / float64(used)
}

// decode turns a chromosome into the ordered inputs it describes.
func (g *geneticOptimizer[K]) decode(c chromosome) []model.RectInput[K] {
	ordered := make([]model.RectInput[K], len(c.order))
	for i, idx := range c.order {
		ordered[i] = g.inputs[idx]
	}
	return ordered
}

// tournamentSelect picks the best individual from a random tournament.
func (g *geneticOptimizer[K]) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return g.copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation chromosomes.
// It preserves the relative order of genes from both parents.
func (g *geneticOptimizer[K]) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.order)
	if n <= 2 {
		return g.copyChromosome(parent1)
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{order: make([]int, n), origin: "genetic"}

	// Copy segment from parent1
	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.order[i] = parent1.order[i]
		inSegment[parent1.order[i]] = true
	}

	// Fill remaining positions with genes from parent2 in order
	childIdx := (point2 + 1) % n
	for _, gene := range parent2.order {
		if !inSegment[gene] {
			child.order[childIdx] = gene
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

// mutate applies random swap and inversion mutations.
func (g *geneticOptimizer[K]) mutate(c *chromosome) {
	n := len(c.order)
	if n < 2 {
		return
	}

	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.order[i], c.order[j] = c.order[j], c.order[i]
		c.origin = "genetic"
	}

	// Inversion is rarer than swapping
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.order[i], c.order[j] = c.order[j], c.order[i]
			i++
			j--
		}
		c.origin = "genetic"
	}
}

// copyChromosome creates a deep copy of a chromosome.
func (g *geneticOptimizer[K]) copyChromosome(c chromosome) chromosome {
	order := make([]int, len(c.order))
	copy(order, c.order)
	return chromosome{order: order, origin: c.origin, fitness: c.fitness}
}

// SearchOrdering looks for an insertion order that packs inputs into less
// used area than the fixed heuristics. The heuristic orders seed the
// population and elitism keeps the best one, so the result is never worse
// than the best of them.
func SearchOrdering[K any](inputs []model.RectInput[K], p Packer, config GeneticConfig) (Trial[K], error) {
	// Validates inputs and gives the baseline to beat.
	baseline, err := PackBest(inputs, p, Orderings)
	if err != nil || len(inputs) == 0 {
		return baseline, err
	}

	ga := newGeneticOptimizer(config, inputs, p)
	best := ga.optimize()

	outputs, used, err := PackOrdered(ga.decode(best), p)
	if err != nil {
		return Trial[K]{}, err
	}
	if used > baseline.UsedArea {
		return baseline, nil
	}

	trial := Trial[K]{
		Ordering: best.origin,
		Outputs:  outputs,
		UsedArea: used,
		Atlases:  outputs[len(outputs)-1].Atlas + 1,
	}
	Logger().Info("ordering search complete", "ordering", trial.Ordering, "atlases", trial.Atlases,
		"used_area", trial.UsedArea, "baseline_used_area", baseline.UsedArea)
	return trial, nil
}
