//go:build darwin

// Package ax reads the focused selection from the macOS Accessibility API,
// with an osascript clipboard round trip as the fallback for applications
// whose accessibility tree exposes no selected text.
package ax

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework ApplicationServices
#import <Cocoa/Cocoa.h>
#import <ApplicationServices/ApplicationServices.h>
#include <stdlib.h>
#include <string.h>

static char *selgrab_copy_cfstring(CFStringRef s) {
    if (s == NULL) {
        return NULL;
    }
    CFIndex max = CFStringGetMaximumSizeForEncoding(CFStringGetLength(s), kCFStringEncodingUTF8) + 1;
    char *buf = malloc(max);
    if (buf == NULL) {
        return NULL;
    }
    if (!CFStringGetCString(s, buf, max, kCFStringEncodingUTF8)) {
        free(buf);
        return NULL;
    }
    return buf;
}

static char *selgrab_copy_attr(AXUIElementRef el, CFStringRef attr) {
    CFTypeRef value = NULL;
    if (AXUIElementCopyAttributeValue(el, attr, &value) != kAXErrorSuccess || value == NULL) {
        return NULL;
    }
    char *out = NULL;
    if (CFGetTypeID(value) == CFStringGetTypeID()) {
        out = selgrab_copy_cfstring((CFStringRef)value);
    }
    CFRelease(value);
    return out;
}

typedef struct {
    char *selected;
    char *role;
    char *value;
    char *description;
} selgrab_focus_info;

// selgrab_copy_focus_info fills out from the system-wide focused element.
// Returns 0 on success, nonzero when nothing holds focus.
int selgrab_copy_focus_info(selgrab_focus_info *out) {
    memset(out, 0, sizeof *out);
    AXUIElementRef sys = AXUIElementCreateSystemWide();
    if (sys == NULL) {
        return 1;
    }
    CFTypeRef focusedRef = NULL;
    AXError err = AXUIElementCopyAttributeValue(sys, kAXFocusedUIElementAttribute, &focusedRef);
    CFRelease(sys);
    if (err != kAXErrorSuccess || focusedRef == NULL) {
        return 1;
    }
    AXUIElementRef focused = (AXUIElementRef)focusedRef;
    out->selected = selgrab_copy_attr(focused, kAXSelectedTextAttribute);
    out->role = selgrab_copy_attr(focused, kAXRoleAttribute);
    out->value = selgrab_copy_attr(focused, kAXValueAttribute);
    out->description = selgrab_copy_attr(focused, kAXDescriptionAttribute);
    CFRelease(focused);
    return 0;
}

// selgrab_search_selected_text looks for non-empty selected text under el,
// visiting at most maxBreadth children per level, maxDepth levels deep.
static char *selgrab_search_selected_text(AXUIElementRef el, int maxDepth, int maxBreadth) {
    char *text = selgrab_copy_attr(el, kAXSelectedTextAttribute);
    if (text != NULL && text[0] != '\0') {
        return text;
    }
    free(text);
    if (maxDepth <= 0) {
        return NULL;
    }
    CFTypeRef childrenRef = NULL;
    if (AXUIElementCopyAttributeValue(el, kAXChildrenAttribute, &childrenRef) != kAXErrorSuccess || childrenRef == NULL) {
        return NULL;
    }
    char *found = NULL;
    if (CFGetTypeID(childrenRef) == CFArrayGetTypeID()) {
        CFArrayRef children = (CFArrayRef)childrenRef;
        CFIndex n = CFArrayGetCount(children);
        if (n > maxBreadth) {
            n = maxBreadth;
        }
        for (CFIndex i = 0; i < n && found == NULL; i++) {
            AXUIElementRef child = (AXUIElementRef)CFArrayGetValueAtIndex(children, i);
            found = selgrab_search_selected_text(child, maxDepth - 1, maxBreadth);
        }
    }
    CFRelease(childrenRef);
    return found;
}

// selgrab_pid_selected_text reads the selection from pid's focused element,
// falling back to a bounded search of its accessibility tree.
char *selgrab_pid_selected_text(pid_t pid, int maxDepth, int maxBreadth) {
    AXUIElementRef app = AXUIElementCreateApplication(pid);
    if (app == NULL) {
        return NULL;
    }
    char *text = NULL;
    CFTypeRef focusedRef = NULL;
    if (AXUIElementCopyAttributeValue(app, kAXFocusedUIElementAttribute, &focusedRef) == kAXErrorSuccess && focusedRef != NULL) {
        text = selgrab_copy_attr((AXUIElementRef)focusedRef, kAXSelectedTextAttribute);
        CFRelease(focusedRef);
    }
    if (text == NULL || text[0] == '\0') {
        free(text);
        text = selgrab_search_selected_text(app, maxDepth, maxBreadth);
    }
    CFRelease(app);
    return text;
}

// selgrab_app_selected_text queries selected text on the application element itself.
char *selgrab_app_selected_text(pid_t pid) {
    AXUIElementRef app = AXUIElementCreateApplication(pid);
    if (app == NULL) {
        return NULL;
    }
    char *text = selgrab_copy_attr(app, kAXSelectedTextAttribute);
    CFRelease(app);
    return text;
}

pid_t selgrab_frontmost_pid(void) {
    NSRunningApplication *app = [NSWorkspace sharedWorkspace].frontmostApplication;
    if (app == nil) {
        return -1;
    }
    return [app processIdentifier];
}

char *selgrab_frontmost_app_name(void) {
    NSRunningApplication *app = [NSWorkspace sharedWorkspace].frontmostApplication;
    if (app == nil || app.localizedName == nil) {
        return NULL;
    }
    return strdup([app.localizedName UTF8String]);
}

bool selgrab_ax_trusted(void) {
    return AXIsProcessTrusted();
}

bool selgrab_ax_prompt(void) {
    const void *keys[] = { kAXTrustedCheckOptionPrompt };
    const void *values[] = { kCFBooleanTrue };
    CFDictionaryRef opts = CFDictionaryCreate(kCFAllocatorDefault, keys, values, 1,
        &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
    bool trusted = AXIsProcessTrustedWithOptions(opts);
    CFRelease(opts);
    return trusted;
}
*/
import "C"

import (
	"errors"
	"log/slog"
	"unsafe"
)

// Tree-search bounds for applications whose focused element is not directly
// reachable. Deep UI trees (browsers, electron apps) would otherwise make
// the walk unbounded.
const (
	searchMaxDepth   = 6
	searchMaxBreadth = 15
)

// ErrNoFocus means no element currently holds keyboard focus.
var ErrNoFocus = errors.New("ax: no focused element")

// ErrNoSelection means the accessibility tree exposes no selected text
// anywhere the bounded walk looked.
var ErrNoSelection = errors.New("ax: no accessible selected text")

// DefaultWebRoles names the accessibility roles treated as web content. For
// these, surrounding context is trusted only from the value attribute:
// browsers put unrelated UI chrome in title and description.
func DefaultWebRoles() map[string]bool {
	return map[string]bool{
		"AXWebArea":  true,
		"AXTextArea": true,
	}
}

func goString(p *C.char) string {
	if p == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(p))
	return C.GoString(p)
}

// SelectionWithContext reads the system-wide focused element's selected text
// and, when the element also exposes its content, a candidate surrounding
// context (the longer of the value and description attributes). The context
// is a candidate only: callers must verify it actually contains the
// selection before trusting it.
func SelectionWithContext(webRoles map[string]bool) (text, context string, err error) {
	var info C.selgrab_focus_info
	if C.selgrab_copy_focus_info(&info) != 0 {
		return "", "", ErrNoFocus
	}
	text = goString(info.selected)
	role := goString(info.role)
	value := goString(info.value)
	desc := goString(info.description)
	if text == "" {
		return "", "", ErrNoSelection
	}
	if webRoles[role] {
		desc = ""
	}
	context = value
	if len(desc) > len(value) {
		context = desc
	}
	slog.Debug("accessibility selection", "role", role, "len", len(text), "context_len", len(context))
	return text, context, nil
}

// SelectedText runs the accessibility chain: the system-wide focused element
// first, then the frontmost application's focused element or a bounded walk
// of its tree, then the application element itself.
func SelectedText() (string, error) {
	if text, _, err := SelectionWithContext(nil); err == nil && text != "" {
		return text, nil
	}
	pid := C.selgrab_frontmost_pid()
	if pid < 0 {
		return "", ErrNoFocus
	}
	if text := goString(C.selgrab_pid_selected_text(pid, searchMaxDepth, searchMaxBreadth)); text != "" {
		return text, nil
	}
	if text := goString(C.selgrab_app_selected_text(pid)); text != "" {
		return text, nil
	}
	return "", ErrNoSelection
}

// FrontmostAppName returns the localized name of the frontmost application.
// It keys the per-application method cache.
func FrontmostAppName() (string, error) {
	name := goString(C.selgrab_frontmost_app_name())
	if name == "" {
		return "", errors.New("ax: no frontmost application")
	}
	return name, nil
}

// Trusted reports whether this process has accessibility control.
func Trusted() bool { return bool(C.selgrab_ax_trusted()) }

// PromptForTrust is Trusted plus the system permission dialog when the
// answer is no.
func PromptForTrust() bool { return bool(C.selgrab_ax_prompt()) }
