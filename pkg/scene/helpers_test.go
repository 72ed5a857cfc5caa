package scene

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/geometry"
)

func sphereAt(t *testing.T, s *Scene, i int) *geometry.Sphere {
	t.Helper()
	sphere, ok := s.Shapes.Shapes[i].(*geometry.Sphere)
	if !ok {
		t.Fatalf("Shape %d is %T, not a sphere", i, s.Shapes.Shapes[i])
	}
	return sphere
}
