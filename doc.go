// Package folio is the engine-agnostic core of a touch-driven portfolio
// scene: a retained-mode node tree, a time-based action system, a smoothed
// camera with shake, hit-tested button widgets and the menu flow that ties
// them together.
//
// Nothing in this package draws or reads devices. A host (see the ebitenhost
// and termhost packages) renders [Scene.Root] and feeds the scene frames and
// touches:
//
//	scene := folio.NewScene(folio.DefaultConfig())
//	scene.OnAttach()
//	for each frame {
//		scene.OnFrame(now)           // seconds, monotonic
//		scene.OnTouchBegan(touches)  // scene space: origin at center, Y down
//		render(scene.Root())
//	}
//	scene.OnDetach()
//
// # Scene graph
//
// Every visual element is a [Node]. Children inherit their parent's
// transform and alpha. Create nodes with [NewContainer], [NewSprite],
// [NewRect], [NewLabel] and [NewPath]. A node may carry a mask
// ([Node.SetMask]) that clips its subtree.
//
// # Actions
//
// [Action] values describe animations declaratively:
//
//	n.Run(folio.Sequence(
//		folio.Wait(1),
//		folio.MoveToX(120, 0.5).WithEase(folio.EaseOut),
//		folio.Callback(done),
//	))
//
// A [Scheduler] advances every node's actions once per frame. Removing or
// disposing a node drops its in-flight actions; actions run on a detached
// node wait until it is attached.
//
// # Camera
//
// [Camera] owns three nodes under the scene root: a zoom node, a root node
// for world content and a HUD node that ignores camera translation. Each
// Update moves the world toward the negated target position by the
// smoothing factor and applies any active shake.
//
// # Buttons and menu flow
//
// [PortraitButton] fills a progress ring on rapid taps and unlocks when it
// is full. The scene then brings in four [MenuOptionButton] rows; selecting
// one slides its panel across and shows the [BackButton]. Widgets report
// through typed [ButtonEvent] values on a donburi event bus, which the
// [Scene] processes after input and after each frame.
//
// # Debug mode
//
// [Scene.SetDebugMode] logs touches, menu state changes and per-second stats
// to stderr, panics on use of disposed nodes, and lets unclaimed drags and
// pinches pan and zoom the camera.
package folio
