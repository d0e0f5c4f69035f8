package scene

import (
	"fmt"
	"math/rand"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
	"github.com/jmallory/go-tiled-raytracer/pkg/geometry"
	"github.com/jmallory/go-tiled-raytracer/pkg/material"
	"github.com/jmallory/go-tiled-raytracer/pkg/renderer"
)

// Preset builders for the built-in scenes. Every preset is deterministic:
// randomized layouts take their seed from the caller.

// Names of the built-in scenes, in the order ListPresets reports them
const (
	PresetSpheres      = "spheres"
	PresetCornell      = "cornell"
	PresetCornellSmoke = "cornell-smoke"
	PresetMarble       = "marble"
)

// NewPreset builds the named preset scene, already preprocessed
func NewPreset(name string, seed int64) (*Scene, error) {
	var s *Scene
	switch name {
	case PresetSpheres:
		s = NewSphereField(seed)
	case PresetCornell:
		s = NewCornellBox()
	case PresetCornellSmoke:
		s = NewCornellSmoke()
	case PresetMarble:
		s = NewMarbleSpheres(seed)
	default:
		return nil, fmt.Errorf("unknown scene %q (have: %s, %s, %s, %s)",
			name, PresetSpheres, PresetCornell, PresetCornellSmoke, PresetMarble)
	}

	if err := s.Preprocess(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSphereField builds a field of small random spheres around three large
// ones, on a checkered ground; a share of the diffuse spheres bounce during
// the shutter interval
func NewSphereField(seed int64) *Scene {
	random := rand.New(rand.NewSource(seed))

	ground := material.NewTexturedLambertian(
		material.NewCheckerColors(4.0, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))

	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	}

	for a := -7; a < 7; a++ {
		for b := -7; b < 7; b++ {
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				0.2,
				float64(b)+0.9*random.Float64(),
			)
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() < 0.9 {
				continue
			}

			choose := random.Float64()
			switch {
			case choose < 0.65:
				albedo := core.NewVec3(random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64())
				if choose < 0.2 {
					// Bouncing sphere, blurred over the shutter interval
					centerEnd := center.Add(core.NewVec3(0, 0.4*random.Float64(), 0))
					shapes = append(shapes,
						geometry.NewMovingSphere(center, centerEnd, 0, 1, 0.2, material.NewLambertian(albedo)))
				} else {
					shapes = append(shapes,
						geometry.NewSphere(center, 0.2, material.NewLambertian(albedo)))
				}
			case choose < 0.85:
				albedo := core.NewVec3(
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
				)
				fuzz := 0.5 * random.Float64()
				shapes = append(shapes, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				shapes = append(shapes, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	return &Scene{
		Shapes: shapes,
		Camera: renderer.CameraConfig{
			Center:        core.NewVec3(13, 2, 3),
			LookAt:        core.NewVec3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          20.0,
			AspectRatio:   16.0 / 9.0,
			Aperture:      0.1,
			FocusDistance: 10.0,
			ShutterOpen:   0.0,
			ShutterClose:  1.0,
		},
		BackgroundFn: GradientBackground(core.NewVec3(1, 1, 1), core.NewVec3(0.5, 0.7, 1.0)),
	}
}

// NewCornellBox builds the classic Cornell box: five walls, an area light in
// the ceiling and two rotated boxes
func NewCornellBox() *Scene {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	var tall geometry.Shape = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	tall = geometry.NewRotateY(tall, 15)
	tall = geometry.NewTranslate(tall, core.NewVec3(265, 0, 295))

	var short geometry.Shape = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	short = geometry.NewRotateY(short, -18)
	short = geometry.NewTranslate(short, core.NewVec3(130, 0, 65))

	shapes := []geometry.Shape{
		geometry.NewYZRect(0, 555, 0, 555, 555, green),
		geometry.NewYZRect(0, 555, 0, 555, 0, red),
		geometry.NewXZRect(213, 343, 227, 332, 554, light),
		geometry.NewXZRect(0, 555, 0, 555, 0, white),
		geometry.NewXZRect(0, 555, 0, 555, 555, white),
		geometry.NewXYRect(0, 555, 0, 555, 555, white),
		tall,
		short,
	}

	return &Scene{
		Shapes:       shapes,
		Camera:       cornellCamera(),
		BackgroundFn: SolidBackground(core.NewVec3(0, 0, 0)),
	}
}

// NewCornellSmoke is the Cornell box with the boxes replaced by volumes of
// smoke and fog
func NewCornellSmoke() *Scene {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))

	var tall geometry.Shape = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	tall = geometry.NewRotateY(tall, 15)
	tall = geometry.NewTranslate(tall, core.NewVec3(265, 0, 295))

	var short geometry.Shape = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	short = geometry.NewRotateY(short, -18)
	short = geometry.NewTranslate(short, core.NewVec3(130, 0, 65))

	shapes := []geometry.Shape{
		geometry.NewYZRect(0, 555, 0, 555, 555, green),
		geometry.NewYZRect(0, 555, 0, 555, 0, red),
		geometry.NewXZRect(113, 443, 127, 432, 554, light),
		geometry.NewXZRect(0, 555, 0, 555, 0, white),
		geometry.NewXZRect(0, 555, 0, 555, 555, white),
		geometry.NewXYRect(0, 555, 0, 555, 555, white),
		geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1)),
	}

	return &Scene{
		Shapes:       shapes,
		Camera:       cornellCamera(),
		BackgroundFn: SolidBackground(core.NewVec3(0, 0, 0)),
	}
}

// NewMarbleSpheres shows the procedural marble texture on two spheres over a
// matching ground
func NewMarbleSpheres(seed int64) *Scene {
	marble := material.NewTexturedLambertian(material.NewMarble(4.0, seed))

	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, material.NewDiffuseLight(core.NewVec3(4, 4, 4))),
	}

	return &Scene{
		Shapes: shapes,
		Camera: renderer.CameraConfig{
			Center:      core.NewVec3(13, 2, 3),
			LookAt:      core.NewVec3(0, 2, 0),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        20.0,
			AspectRatio: 16.0 / 9.0,
		},
		BackgroundFn: SolidBackground(core.NewVec3(0.02, 0.02, 0.04)),
	}
}

func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:      core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 1.0,
	}
}
