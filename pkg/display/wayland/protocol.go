package wayland

// Request opcodes, core protocol plus xdg-shell. Only what the dialog
// window needs.
const (
	displayID = 1

	reqDisplaySync        = 0
	reqDisplayGetRegistry = 1

	reqRegistryBind = 0

	reqCompositorCreateSurface = 0

	reqSurfaceAttach         = 1
	reqSurfaceDamage         = 2
	reqSurfaceCommit         = 6
	reqSurfaceSetBufferScale = 8
	reqSurfaceDamageBuffer   = 9

	reqShmCreatePool = 0

	reqShmPoolCreateBuffer = 0
	reqShmPoolDestroy      = 1

	reqBufferDestroy = 0

	reqSeatGetPointer  = 0
	reqSeatGetKeyboard = 1

	reqWmBaseGetXdgSurface = 2
	reqWmBasePong          = 3

	reqXdgSurfaceGetToplevel  = 1
	reqXdgSurfaceAckConfigure = 4

	reqToplevelSetTitle   = 2
	reqToplevelSetAppID   = 3
	reqToplevelMove       = 5
	reqToplevelSetMaxSize = 7
	reqToplevelSetMinSize = 8
)

// Event opcodes.
const (
	evDisplayError    = 0
	evDisplayDeleteID = 1

	evRegistryGlobal       = 0
	evRegistryGlobalRemove = 1

	evCallbackDone = 0

	evSurfaceEnter                = 0
	evSurfaceLeave                = 1
	evSurfacePreferredBufferScale = 2

	evSeatCapabilities = 0

	evKeyboardKeymap    = 0
	evKeyboardEnter     = 1
	evKeyboardLeave     = 2
	evKeyboardKey       = 3
	evKeyboardModifiers = 4

	evPointerEnter  = 0
	evPointerLeave  = 1
	evPointerMotion = 2
	evPointerButton = 3
	evPointerAxis   = 4

	evOutputScale = 3

	evWmBasePing = 0

	evXdgSurfaceConfigure = 0

	evToplevelConfigure = 0
	evToplevelClose     = 1
)

// Seat capability bits.
const (
	seatCapPointer  = 1
	seatCapKeyboard = 2
)

// wl_shm pixel format: little-endian ARGB words, premultiplied.
const formatARGB8888 = 0

// Keymap format: the xkb_v1 text format every real compositor sends.
const keymapFormatXKBv1 = 1

// linux/input button codes as delivered by wl_pointer.button.
const (
	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112
)

// xkb modifier mask bits, legacy core order kept by compiled keymaps.
const (
	modMaskCaps = 1 << 1
	modMaskNum  = 1 << 4
)

// Interface versions to request, capped at what the client understands.
var bindVersions = map[string]uint32{
	"wl_compositor": 6,
	"wl_shm":        1,
	"xdg_wm_base":   6,
	"wl_seat":       9,
	"wl_output":     4,
}

// objKind tags a protocol object so the dispatcher knows which interface
// an incoming event belongs to.
type objKind uint8

const (
	kindNone objKind = iota
	kindRegistry
	kindCallback
	kindCompositor
	kindShm
	kindShmPool
	kindBuffer
	kindSurface
	kindWmBase
	kindXdgSurface
	kindToplevel
	kindSeat
	kindKeyboard
	kindPointer
	kindOutput
)
