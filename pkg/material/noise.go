package material

import (
	"math"
	"math/rand"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
)

const perlinPointCount = 256

// Perlin generates gradient noise with trilinear Hermitian interpolation.
// Construction is randomized from the given seed; evaluation is read-only.
type Perlin struct {
	randVec [perlinPointCount]core.Vec3
	permX   [perlinPointCount]int
	permY   [perlinPointCount]int
	permZ   [perlinPointCount]int
}

// NewPerlin creates a Perlin noise generator from a deterministic seed
func NewPerlin(seed int64) *Perlin {
	random := rand.New(rand.NewSource(seed))

	p := &Perlin{}
	for i := range p.randVec {
		v := core.NewVec3(
			2*random.Float64()-1,
			2*random.Float64()-1,
			2*random.Float64()-1,
		)
		p.randVec[i] = v.Normalize()
	}

	perlinGeneratePerm(&p.permX, random)
	perlinGeneratePerm(&p.permY, random)
	perlinGeneratePerm(&p.permZ, random)

	return p
}

func perlinGeneratePerm(perm *[perlinPointCount]int, random *rand.Rand) {
	for i := range perm {
		perm[i] = i
	}
	for i := perlinPointCount - 1; i > 0; i-- {
		target := random.Intn(i + 1)
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// Noise returns gradient noise in [-1, 1] at the given point
func (p *Perlin) Noise(point core.Vec3) float64 {
	u := point.X - math.Floor(point.X)
	v := point.Y - math.Floor(point.Y)
	w := point.Z - math.Floor(point.Z)

	i := int(math.Floor(point.X))
	j := int(math.Floor(point.Y))
	k := int(math.Floor(point.Z))

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.randVec[p.permX[(i+di)&255]^p.permY[(j+dj)&255]^p.permZ[(k+dk)&255]]
			}
		}
	}

	// Hermitian smoothing
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				weight := core.NewVec3(u-float64(di), v-float64(dj), w-float64(dk))
				accum += (float64(di)*uu + (1-float64(di))*(1-uu)) *
					(float64(dj)*vv + (1-float64(dj))*(1-vv)) *
					(float64(dk)*ww + (1-float64(dk))*(1-ww)) *
					c[di][dj][dk].Dot(weight)
			}
		}
	}

	return accum
}

// Turbulence returns the sum of repeatedly scaled noise octaves
func (p *Perlin) Turbulence(point core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	temp := point

	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(temp)
		weight *= 0.5
		temp = temp.Multiply(2)
	}

	return math.Abs(accum)
}

// Marble is a procedural texture producing marble-like bands by perturbing a
// sine wave with Perlin turbulence
type Marble struct {
	noise *Perlin
	Scale float64
}

// NewMarble creates a marble texture with the given band scale and noise seed
func NewMarble(scale float64, seed int64) *Marble {
	return &Marble{
		noise: NewPerlin(seed),
		Scale: scale,
	}
}

// Evaluate returns the marble color at the given point
func (m *Marble) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	band := math.Sin(m.Scale*point.Z + 10.0*m.noise.Turbulence(point, 7))
	return core.NewVec3(1, 1, 1).Multiply(0.5 * (1.0 + band))
}
