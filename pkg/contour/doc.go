// Package contour implements the morphological geodesic active contour
// (MGAC) evolver.
//
// The evolver moves a binary level set toward the edges encoded in a speed
// field. Each iteration applies, in order:
//
//  1. the balloon force, a dilation (balloon > 0) or erosion (balloon < 0)
//     with the full 3x3 neighbourhood, restricted to pixels where the speed
//     exceeds threshold/|balloon|;
//  2. the image attachment force, which sets or clears pixels according to
//     the sign of ∇speed·∇u;
//  3. Smoothing steps of the morphological curvature operator, alternating
//     SI∘IS and IS∘SI over the whole run.
//
// The run always performs exactly Iterations steps. An Observer receives the
// initial mask and the mask after every iteration; a nil Observer is valid.
// The context passed to Run is checked at every iteration boundary.
package contour
