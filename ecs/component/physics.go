package component

import "github.com/jakecoffman/cp"

// PhysicsBody links an entity to its chipmunk body. The body lives on the
// course plane: cp X is world X and cp Y is world Z. Body and Shape are
// created by the physics system on first sight of the entity.
type PhysicsBody struct {
	Radius float64
	Mass   float64

	Body  *cp.Body
	Shape *cp.Shape
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]("physics_body")
