// Package opencl implements the GPU tracer backend. The geodesic
// integration and shading kernels are compiled at setup time for the
// selected device; a kernel build failure is surfaced immediately
// rather than silently degrading.
package opencl

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/achilleasa/gopencl/v1.2/cl"
	"github.com/hunterpaulson/blackhole/log"
	"github.com/hunterpaulson/blackhole/scene"
	"github.com/hunterpaulson/blackhole/shade"
	"github.com/hunterpaulson/blackhole/trace"
	"github.com/hunterpaulson/blackhole/tracer"
	"github.com/hunterpaulson/blackhole/tracer/opencl/device"
)

//go:embed kernels/trace.cl
var kernelSource string

// Byte length of one device-side hit record: six float64 fields
// followed by two int32 fields.
const hitRecSize = 6*8 + 2*4

var logger = log.New("opencl tracer")

type Tracer struct {
	id     string
	dev    *device.Device
	params *scene.Params

	traceKernel *device.Kernel
	shadeKernel *device.Kernel

	paramsBuf *device.Buffer
	hitBuf    *device.Buffer
	cellsBuf  *device.Buffer

	// Host-side mirrors of the device buffers.
	hitRaw []byte
	hitMap []trace.Hit
	cells  []byte

	normScale float64
	traced    bool

	stats tracer.Stats
}

// NewTracer selects an opencl device, compiles the kernels for it and
// returns a ready tracer. GPU devices are preferred over CPU ones,
// faster devices over slower; devices whose name matches an entry in
// the comma-separated blacklist are skipped.
func NewTracer(blacklist string) (*Tracer, error) {
	devList, err := device.SelectDevices(device.AllDevices, "")
	if err != nil {
		return nil, err
	}

	var best *device.Device
	for _, d := range devList {
		if blacklisted(d.Name, blacklist) {
			logger.Noticef("skipping blacklisted device: %s", d.Name)
			continue
		}
		if best == nil || devRank(d) > devRank(best) {
			best = d
		}
	}
	if best == nil {
		return nil, ErrNoSuitableDevice
	}

	if err = best.Init(kernelSource); err != nil {
		return nil, err
	}

	tr := &Tracer{
		id:  fmt.Sprintf("opencl (%s)", best.Name),
		dev: best,
	}

	if tr.traceKernel, err = best.Kernel("traceScene"); err != nil {
		tr.Close()
		return nil, err
	}
	if tr.shadeKernel, err = best.Kernel("shadeFrame"); err != nil {
		tr.Close()
		return nil, err
	}

	logger.Noticef("using device: %s", best.Name)
	logger.Infof("device details:\n%s", best.String())
	return tr, nil
}

// devRank orders devices for selection; GPUs always outrank CPUs.
func devRank(d *device.Device) uint32 {
	rank := d.Speed
	if d.Type == device.GpuDevice {
		rank += 1 << 24
	}
	return rank
}

func blacklisted(name, blacklist string) bool {
	if blacklist == "" {
		return false
	}
	for _, entry := range strings.Split(blacklist, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" && strings.Contains(name, entry) {
			return true
		}
	}
	return false
}

func (tr *Tracer) Id() string {
	return tr.id
}

func (tr *Tracer) Close() {
	if tr.traceKernel != nil {
		tr.traceKernel.Release()
		tr.traceKernel = nil
	}
	if tr.shadeKernel != nil {
		tr.shadeKernel.Release()
		tr.shadeKernel = nil
	}
	if tr.paramsBuf != nil {
		tr.paramsBuf.Release()
		tr.paramsBuf = nil
	}
	if tr.hitBuf != nil {
		tr.hitBuf.Release()
		tr.hitBuf = nil
	}
	if tr.cellsBuf != nil {
		tr.cellsBuf.Release()
		tr.cellsBuf = nil
	}
	if tr.dev != nil {
		tr.dev.Close()
		tr.dev = nil
	}
	tr.traced = false
}

func (tr *Tracer) Setup(params *scene.Params) error {
	count := params.PixelCount()
	if count < 1 {
		return tracer.ErrInvalidDimensions
	}
	if params.TiltDeg != 0 {
		return ErrTiltUnsupported
	}

	// The wrappers are created once and reused across Setup calls;
	// Allocate releases any prior device handle before creating the
	// new one, so repeated Setup (grid resizes) cannot leak buffers.
	if tr.paramsBuf == nil {
		tr.paramsBuf = tr.dev.Buffer("sceneParams")
	}
	if err := tr.paramsBuf.Allocate(scene.PackedLen, cl.MEM_READ_ONLY); err != nil {
		return err
	}
	if tr.hitBuf == nil {
		tr.hitBuf = tr.dev.Buffer("hitRecords")
	}
	if err := tr.hitBuf.Allocate(count*hitRecSize, cl.MEM_READ_WRITE); err != nil {
		return err
	}
	if tr.cellsBuf == nil {
		tr.cellsBuf = tr.dev.Buffer("frameCells")
	}
	if err := tr.cellsBuf.Allocate(count, cl.MEM_WRITE_ONLY); err != nil {
		return err
	}

	tr.params = params
	tr.hitRaw = make([]byte, count*hitRecSize)
	tr.hitMap = make([]trace.Hit, count)
	tr.cells = make([]byte, count)
	tr.traced = false
	return nil
}

func (tr *Tracer) Trace() error {
	if tr.params == nil {
		return tracer.ErrNotSetup
	}

	tick := time.Now()

	if err := tr.paramsBuf.WriteData(tr.params.Pack(), 0); err != nil {
		return err
	}
	if err := tr.traceKernel.SetArgs(tr.paramsBuf, tr.hitBuf); err != nil {
		return err
	}
	if _, err := tr.traceKernel.Exec2D(0, 0, tr.params.Width, tr.params.Height, 0, 0); err != nil {
		return err
	}
	if err := tr.hitBuf.ReadData(0, 0, 0, tr.hitRaw); err != nil {
		return err
	}

	decodeHits(tr.hitRaw, tr.hitMap)
	tr.normScale = shade.NormScale(tr.hitMap)
	tr.traced = true
	tr.stats.TraceTime = time.Since(tick)
	return nil
}

func (tr *Tracer) Frame(phase float64) (string, error) {
	if tr.params == nil {
		return "", tracer.ErrNotSetup
	}
	if !tr.traced {
		return "", tracer.ErrNotTraced
	}

	tick := time.Now()

	// Re-upload the uniform with the requested phase; everything else
	// in it is unchanged since the last trace.
	pp := *tr.params
	pp.Phase = phase
	if err := tr.paramsBuf.WriteData(pp.Pack(), 0); err != nil {
		return "", err
	}
	if err := tr.shadeKernel.SetArgs(tr.paramsBuf, tr.hitBuf, tr.normScale, tr.cellsBuf); err != nil {
		return "", err
	}
	if _, err := tr.shadeKernel.Exec2D(0, 0, tr.params.Width, tr.params.Height, 0, 0); err != nil {
		return "", err
	}
	if err := tr.cellsBuf.ReadData(0, 0, 0, tr.cells); err != nil {
		return "", err
	}

	tr.stats.FrameTime = time.Since(tick)
	return shade.Text(tr.params, tr.cells), nil
}

func (tr *Tracer) Stats() *tracer.Stats {
	return &tr.stats
}

// HitMap exposes the decoded hit map of the last trace. Used by the
// backend parity tests.
func (tr *Tracer) HitMap() []trace.Hit {
	return tr.hitMap
}

// decodeHits unpacks the device hit records into host Hit values.
func decodeHits(raw []byte, dst []trace.Hit) {
	for i := range dst {
		rec := raw[i*hitRecSize : (i+1)*hitRecSize]
		dst[i] = trace.Hit{
			R:          math.Float64frombits(binary.LittleEndian.Uint64(rec[0:])),
			Phi:        math.Float64frombits(binary.LittleEndian.Uint64(rec[8:])),
			G:          math.Float64frombits(binary.LittleEndian.Uint64(rec[16:])),
			Emiss:      math.Float64frombits(binary.LittleEndian.Uint64(rec[24:])),
			ThetaFinal: math.Float64frombits(binary.LittleEndian.Uint64(rec[32:])),
			PhiFinal:   math.Float64frombits(binary.LittleEndian.Uint64(rec[40:])),
			Hit:        int32(binary.LittleEndian.Uint32(rec[48:])) != 0,
			Bg:         trace.BgType(binary.LittleEndian.Uint32(rec[52:])),
		}
	}
}
