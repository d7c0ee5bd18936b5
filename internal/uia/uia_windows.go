//go:build windows

// Package uia recovers the document context around the focused selection
// through Windows UI Automation: starting at the focused element, it walks
// toward the root until an ancestor exposes a text pattern, then reads and
// expands that pattern's active selection.
//
// The COM interfaces are bound by hand over go-ole's IUnknown, the same way
// go-ole builds its own typed wrappers. Only the methods this package calls
// get a binding; the rest are vtable placeholders to keep the offsets right.
package uia

import (
	"errors"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
)

var (
	clsidCUIAutomation = ole.NewGUID("{FF48DBA4-60EF-4201-AA87-54103EEF594E}")
	iidIUIAutomation   = ole.NewGUID("{30CBE57D-D9D0-452A-AB13-7AC5AC4825EE}")
	iidTextPattern     = ole.NewGUID("{32EBA289-3583-42C9-9C59-3B6D9A1E9B6A}")
)

const (
	textPatternID     = 10014
	textUnitParagraph = 4
)

// Error reports a failure inside the UI Automation layer.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return "uia: " + e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Structural conditions: the walk simply does not apply here. Callers skip
// to the next strategy instead of failing.
var (
	errNoFocus   = errors.New("no focused element")
	errNoPattern = errors.New("element has no text pattern")
)

type automation struct{ ole.IUnknown }

type automationVtbl struct {
	ole.IUnknownVtbl
	CompareElements             uintptr
	CompareRuntimeIds           uintptr
	GetRootElement              uintptr
	ElementFromHandle           uintptr
	ElementFromPoint            uintptr
	GetFocusedElement           uintptr
	GetRootElementBuildCache    uintptr
	ElementFromHandleBuildCache uintptr
	ElementFromPointBuildCache  uintptr
	GetFocusedElementBuildCache uintptr
	CreateTreeWalker            uintptr
	GetControlViewWalker        uintptr
	GetContentViewWalker        uintptr
	GetRawViewWalker            uintptr
}

func (a *automation) vtbl() *automationVtbl {
	return (*automationVtbl)(unsafe.Pointer(a.RawVTable))
}

func newAutomation() (*automation, error) {
	unk, err := ole.CreateInstance(clsidCUIAutomation, iidIUIAutomation)
	if err != nil {
		return nil, err
	}
	return (*automation)(unsafe.Pointer(unk)), nil
}

func (a *automation) focusedElement() (*element, error) {
	var el *element
	hr, _, _ := syscall.SyscallN(a.vtbl().GetFocusedElement,
		uintptr(unsafe.Pointer(a)),
		uintptr(unsafe.Pointer(&el)))
	if int32(hr) < 0 {
		return nil, ole.NewError(hr)
	}
	if el == nil {
		return nil, errNoFocus
	}
	return el, nil
}

func (a *automation) controlViewWalker() (*treeWalker, error) {
	var w *treeWalker
	hr, _, _ := syscall.SyscallN(a.vtbl().GetControlViewWalker,
		uintptr(unsafe.Pointer(a)),
		uintptr(unsafe.Pointer(&w)))
	if int32(hr) < 0 {
		return nil, ole.NewError(hr)
	}
	if w == nil {
		return nil, errors.New("no control view walker")
	}
	return w, nil
}

type element struct{ ole.IUnknown }

type elementVtbl struct {
	ole.IUnknownVtbl
	SetFocus                  uintptr
	GetRuntimeId              uintptr
	FindFirst                 uintptr
	FindAll                   uintptr
	FindFirstBuildCache       uintptr
	FindAllBuildCache         uintptr
	BuildUpdatedCache         uintptr
	GetCurrentPropertyValue   uintptr
	GetCurrentPropertyValueEx uintptr
	GetCachedPropertyValue    uintptr
	GetCachedPropertyValueEx  uintptr
	GetCurrentPatternAs       uintptr
	GetCachedPatternAs        uintptr
	GetCurrentPattern         uintptr
	GetCachedPattern          uintptr
}

func (e *element) vtbl() *elementVtbl {
	return (*elementVtbl)(unsafe.Pointer(e.RawVTable))
}

// textPattern asks the element for its text pattern support. errNoPattern
// means the element has none, which is the common case on the way up.
func (e *element) textPattern() (*textPattern, error) {
	var pat *textPattern
	hr, _, _ := syscall.SyscallN(e.vtbl().GetCurrentPatternAs,
		uintptr(unsafe.Pointer(e)),
		uintptr(textPatternID),
		uintptr(unsafe.Pointer(iidTextPattern)),
		uintptr(unsafe.Pointer(&pat)))
	if int32(hr) < 0 {
		return nil, ole.NewError(hr)
	}
	if pat == nil {
		return nil, errNoPattern
	}
	return pat, nil
}

type treeWalker struct{ ole.IUnknown }

type treeWalkerVtbl struct {
	ole.IUnknownVtbl
	GetParentElement          uintptr
	GetFirstChildElement      uintptr
	GetLastChildElement       uintptr
	GetNextSiblingElement     uintptr
	GetPreviousSiblingElement uintptr
	NormalizeElement          uintptr
}

func (w *treeWalker) vtbl() *treeWalkerVtbl {
	return (*treeWalkerVtbl)(unsafe.Pointer(w.RawVTable))
}

// parent returns el's parent in the control view, or nil at the root.
func (w *treeWalker) parent(el *element) (*element, error) {
	var p *element
	hr, _, _ := syscall.SyscallN(w.vtbl().GetParentElement,
		uintptr(unsafe.Pointer(w)),
		uintptr(unsafe.Pointer(el)),
		uintptr(unsafe.Pointer(&p)))
	if int32(hr) < 0 {
		return nil, ole.NewError(hr)
	}
	return p, nil
}

type textPattern struct{ ole.IUnknown }

type textPatternVtbl struct {
	ole.IUnknownVtbl
	RangeFromPoint            uintptr
	RangeFromChild            uintptr
	GetSelection              uintptr
	GetVisibleRanges          uintptr
	GetDocumentRange          uintptr
	GetSupportedTextSelection uintptr
}

func (p *textPattern) vtbl() *textPatternVtbl {
	return (*textPatternVtbl)(unsafe.Pointer(p.RawVTable))
}

func (p *textPattern) selection() (*textRangeArray, error) {
	var arr *textRangeArray
	hr, _, _ := syscall.SyscallN(p.vtbl().GetSelection,
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(&arr)))
	if int32(hr) < 0 {
		return nil, ole.NewError(hr)
	}
	if arr == nil {
		return nil, errors.New("no selection ranges")
	}
	return arr, nil
}

func (p *textPattern) documentRange() (*textRange, error) {
	var r *textRange
	hr, _, _ := syscall.SyscallN(p.vtbl().GetDocumentRange,
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(&r)))
	if int32(hr) < 0 {
		return nil, ole.NewError(hr)
	}
	if r == nil {
		return nil, errors.New("no document range")
	}
	return r, nil
}

type textRangeArray struct{ ole.IUnknown }

type textRangeArrayVtbl struct {
	ole.IUnknownVtbl
	GetLength  uintptr
	GetElement uintptr
}

func (a *textRangeArray) vtbl() *textRangeArrayVtbl {
	return (*textRangeArrayVtbl)(unsafe.Pointer(a.RawVTable))
}

func (a *textRangeArray) length() (int, error) {
	var n int32
	hr, _, _ := syscall.SyscallN(a.vtbl().GetLength,
		uintptr(unsafe.Pointer(a)),
		uintptr(unsafe.Pointer(&n)))
	if int32(hr) < 0 {
		return 0, ole.NewError(hr)
	}
	return int(n), nil
}

func (a *textRangeArray) element(i int) (*textRange, error) {
	var r *textRange
	hr, _, _ := syscall.SyscallN(a.vtbl().GetElement,
		uintptr(unsafe.Pointer(a)),
		uintptr(int32(i)),
		uintptr(unsafe.Pointer(&r)))
	if int32(hr) < 0 {
		return nil, ole.NewError(hr)
	}
	if r == nil {
		return nil, errors.New("nil text range")
	}
	return r, nil
}

type textRange struct{ ole.IUnknown }

type textRangeVtbl struct {
	ole.IUnknownVtbl
	Clone                 uintptr
	Compare               uintptr
	CompareEndpoints      uintptr
	ExpandToEnclosingUnit uintptr
	FindAttribute         uintptr
	FindText              uintptr
	GetAttributeValue     uintptr
	GetBoundingRectangles uintptr
	GetEnclosingElement   uintptr
	GetText               uintptr
	Move                  uintptr
	MoveEndpointByUnit    uintptr
	MoveEndpointByRange   uintptr
	Select                uintptr
	AddToSelection        uintptr
	RemoveFromSelection   uintptr
	ScrollIntoView        uintptr
	GetChildren           uintptr
}

func (r *textRange) vtbl() *textRangeVtbl {
	return (*textRangeVtbl)(unsafe.Pointer(r.RawVTable))
}

func (r *textRange) clone() (*textRange, error) {
	var c *textRange
	hr, _, _ := syscall.SyscallN(r.vtbl().Clone,
		uintptr(unsafe.Pointer(r)),
		uintptr(unsafe.Pointer(&c)))
	if int32(hr) < 0 {
		return nil, ole.NewError(hr)
	}
	if c == nil {
		return nil, errors.New("clone returned nil range")
	}
	return c, nil
}

func (r *textRange) expandToEnclosingUnit(unit int32) error {
	hr, _, _ := syscall.SyscallN(r.vtbl().ExpandToEnclosingUnit,
		uintptr(unsafe.Pointer(r)),
		uintptr(unit))
	if int32(hr) < 0 {
		return ole.NewError(hr)
	}
	return nil
}

// text reads the range's text, up to max UTF-16 units; -1 means no limit.
func (r *textRange) text(max int32) (string, error) {
	var bstr *uint16
	hr, _, _ := syscall.SyscallN(r.vtbl().GetText,
		uintptr(unsafe.Pointer(r)),
		uintptr(max),
		uintptr(unsafe.Pointer(&bstr)))
	if int32(hr) < 0 {
		return "", ole.NewError(hr)
	}
	if bstr == nil {
		return "", nil
	}
	defer ole.SysFreeString((*int16)(unsafe.Pointer(bstr)))
	return ole.BstrToString(bstr), nil
}
