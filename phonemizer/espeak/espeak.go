//go:build !noespeak
// +build !noespeak

package espeak

/*
#cgo LDFLAGS: -lespeak-ng
#define _GNU_SOURCE
#include <stdio.h>
#include <stdlib.h>
#include <espeak-ng/speak_lib.h>

// phoneme_trace wraps an in-memory stream that receives the engine's
// phoneme trace. open_memstream may relocate the buffer on growth, so the
// buffer pointer and size live next to the stream they belong to.
typedef struct {
	FILE   *fp;
	char   *buf;
	size_t  size;
} phoneme_trace;

static phoneme_trace *trace_open(void) {
	phoneme_trace *t = calloc(1, sizeof(phoneme_trace));
	if (t == NULL) {
		return NULL;
	}
	t->fp = open_memstream(&t->buf, &t->size);
	if (t->fp == NULL) {
		free(t);
		return NULL;
	}
	return t;
}

static size_t trace_flush(phoneme_trace *t) {
	fflush(t->fp);
	return t->size;
}

static const char *trace_data(phoneme_trace *t) {
	return t->buf;
}

static void trace_close(phoneme_trace *t) {
	if (t == NULL) {
		return;
	}
	if (t->fp != NULL) {
		fclose(t->fp);
	}
	free(t->buf);
	free(t);
}

// goClauseBoundary is implemented in Go (callback.go). It drains newly
// completed phoneme trace lines and returns nonzero to abort synthesis.
extern int goClauseBoundary(void);

// synth_cb is the callback registered with the engine. The wav buffer is
// discarded: no audio is ever produced or played. Clause boundaries are
// forwarded to Go on sentence and end-of-synthesis events.
static int synth_cb(short *wav, int numsamples, espeak_EVENT *events) {
	(void)wav;
	(void)numsamples;
	for (espeak_EVENT *ev = events; ev != NULL && ev->type != espeakEVENT_LIST_TERMINATED; ev++) {
		if (ev->type == espeakEVENT_SENTENCE ||
			ev->type == espeakEVENT_END ||
			ev->type == espeakEVENT_MSG_TERMINATED) {
			if (goClauseBoundary() != 0) {
				return 1;
			}
		}
	}
	return 0;
}

static void register_synth_callback(void) {
	espeak_SetSynthCallback(synth_cb);
}

static int init_engine(const char *path) {
	return espeak_Initialize(AUDIO_OUTPUT_SYNCHRONOUS, 0, path, 0);
}

static int set_voice_by_name(const char *name) {
	return espeak_SetVoiceByName(name);
}

static int set_voice_by_file(const char *path) {
	return espeak_SetVoiceByFile(path);
}

static int set_phoneme_trace(int mode, phoneme_trace *t) {
	espeak_SetPhonemeTrace(mode, t->fp);
	return 0;
}

static int synth_text(const char *text, int flags) {
	return espeak_Synth(text, 0, 0, POS_CHARACTER, 0, flags, NULL, NULL);
}
*/
import "C"

import (
	"bytes"
	"fmt"
	"path/filepath"
	"unsafe"

	"github.com/charmbracelet/log"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/rhasspy/espeak-phonemizer-go/phonemizer"
)

// Handle owns the loaded native engine: initialization state and the current
// voice. The underlying library is process-global, so a Handle must not be
// used from more than one goroutine at a time; callers serialize externally.
type Handle struct {
	initialized  bool
	sampleRate   int
	currentVoice string
}

// synthRun is the capture state for one in-flight synthesis call. The native
// callback re-enters Go through the package-level active run; the engine is
// single-threaded, so exactly one run exists at a time.
type synthRun struct {
	trace    *C.phoneme_trace
	emit     phonemizer.ClauseFunc
	consumed int
	clauses  int
}

// active is the in-flight run observed by goClauseBoundary. Unsynchronized:
// the engine offers no concurrency guarantees and the contract mandates one
// call at a time per process.
var active *synthRun

// New returns an uninitialized engine handle. Initialization is deferred to
// the first Initialize call.
func New() *Handle {
	return &Handle{}
}

// Available reports whether the native library has been initialized.
func (h *Handle) Available() bool {
	return h.initialized
}

// SampleRate returns the engine's reported sample rate, valid after
// initialization. The rate is informational only; audio is suppressed.
func (h *Handle) SampleRate() int {
	return h.sampleRate
}

// Initialize loads and initializes libespeak-ng exactly once per handle.
// A second call on an initialized handle is a no-op. The engine is put into
// synchronous retrieval mode so no audio device is ever opened.
func (h *Handle) Initialize(dataPath string) error {
	if h.initialized {
		return nil
	}

	var cPath *C.char
	if dataPath != "" {
		expanded, err := homedir.Expand(dataPath)
		if err == nil {
			dataPath = expanded
		}
		cPath = C.CString(dataPath)
		defer C.free(unsafe.Pointer(cPath))
	}

	rate := int(C.init_engine(cPath))
	if rate <= 0 {
		return fmt.Errorf("espeak_Initialize returned %d (missing espeak-ng data?)", rate)
	}

	C.register_synth_callback()

	h.sampleRate = rate
	h.initialized = true
	log.Debug("espeak-ng initialized", "sample_rate", rate, "data_path", dataPath)
	return nil
}

// SetVoice selects the active voice. The name may be an espeak voice name
// like "en-us" or an absolute path to a voice file. On failure the engine
// keeps its previous voice.
func (h *Handle) SetVoice(name string) error {
	if !h.initialized {
		return phonemizer.ErrEngineNotAvailable
	}

	voice := name
	if expanded, err := homedir.Expand(voice); err == nil {
		voice = expanded
	}

	cVoice := C.CString(voice)
	defer C.free(unsafe.Pointer(cVoice))

	var result C.int
	if filepath.IsAbs(voice) {
		result = C.set_voice_by_file(cVoice)
	} else {
		result = C.set_voice_by_name(cVoice)
	}

	if result != eeOK {
		return fmt.Errorf("%w: %q (espeak error %d)", phonemizer.ErrVoiceNotFound, name, int(result))
	}

	h.currentVoice = name
	return nil
}

// Synthesize runs the engine over text with the phoneme trace directed at an
// in-memory stream. The call blocks until the engine reports completion;
// emit fires once per clause on this call stack. A nil emit discards the
// trace entirely.
func (h *Handle) Synthesize(text string, req phonemizer.SynthesisRequest, emit phonemizer.ClauseFunc) error {
	if !h.initialized {
		return phonemizer.ErrEngineNotAvailable
	}

	trace := C.trace_open()
	if trace == nil {
		return fmt.Errorf("unable to open phoneme trace stream")
	}
	defer C.trace_close(trace)

	C.set_phoneme_trace(C.int(phonemeTraceFlags(req.PhonemeSeparator)), trace)

	run := &synthRun{trace: trace, emit: emit}
	active = run
	defer func() { active = nil }()

	cText := C.CString(text)
	defer C.free(unsafe.Pointer(cText))

	if rc := C.synth_text(cText, C.int(synthFlags(req.SSML))); rc != eeOK {
		return fmt.Errorf("espeak_Synth returned %d", int(rc))
	}

	// The engine does not always emit a trailing event for the final
	// clause; drain whatever remains in the trace.
	run.drain(true)

	log.Debug("synthesis complete", "clauses", run.clauses, "ssml", req.SSML)
	return nil
}

// drain flushes the trace stream and emits any newly completed lines as
// clause events. When final is true the unterminated tail line, if any, is
// emitted as well. Returns false when the capture target asked to stop.
func (r *synthRun) drain(final bool) bool {
	if r.emit == nil {
		return true
	}

	size := int(C.trace_flush(r.trace))
	if size <= r.consumed {
		return true
	}

	data := C.GoBytes(unsafe.Pointer(C.trace_data(r.trace)), C.int(size))
	pending := data[r.consumed:]

	for {
		nl := bytes.IndexByte(pending, '\n')
		if nl < 0 {
			break
		}
		line := pending[:nl]
		pending = pending[nl+1:]
		r.consumed += nl + 1

		r.clauses++
		if !r.emit(line) {
			return false
		}
	}

	if final && len(bytes.TrimSpace(pending)) > 0 {
		r.consumed += len(pending)
		r.clauses++
		return r.emit(pending)
	}

	return true
}
