package device

import (
	"strings"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"
)

const (
	enumBufferSize = 100
	nameBufferSize = 1024
)

// PlatformInfo describes one opencl platform and the devices it
// exposes. Only the fields the device tables display are queried.
type PlatformInfo struct {
	Name    string
	Version string
	Devices []*Device
}

// GetPlatformInfo enumerates the opencl platforms with their CPU and
// GPU devices and estimates each device's speed.
func GetPlatformInfo() ([]PlatformInfo, error) {
	pids := make([]cl.PlatformID, enumBufferSize)
	pidCount := uint32(0)
	cl.GetPlatformIDs(uint32(len(pids)), &pids[0], &pidCount)

	data := make([]byte, nameBufferSize)
	dataLen := uint64(0)
	devIds := make([]cl.DeviceId, enumBufferSize)

	infoList := make([]PlatformInfo, int(pidCount))
	for pIdx := range infoList {
		info := &infoList[pIdx]

		cl.GetPlatformInfo(pids[pIdx], cl.PLATFORM_NAME, nameBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		info.Name = string(data[0 : dataLen-1])
		cl.GetPlatformInfo(pids[pIdx], cl.PLATFORM_VERSION, nameBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		info.Version = string(data[0 : dataLen-1])

		collect := func(count uint32, devType DeviceType) {
			for dIdx := 0; dIdx < int(count); dIdx++ {
				cl.GetDeviceInfo(devIds[dIdx], cl.DEVICE_NAME, nameBufferSize, unsafe.Pointer(&data[0]), &dataLen)
				info.Devices = append(info.Devices, &Device{
					Name: string(data[0 : dataLen-1]),
					Id:   devIds[dIdx],
					Type: devType,
				})
			}
		}

		// The query API has no combined mode that reports the device
		// class back, so each class takes its own pass.
		devCount := uint32(0)
		cl.GetDeviceIDs(pids[pIdx], cl.DEVICE_TYPE_CPU, uint32(enumBufferSize), &devIds[0], &devCount)
		collect(devCount, CpuDevice)
		devCount = 0
		cl.GetDeviceIDs(pids[pIdx], cl.DEVICE_TYPE_GPU, uint32(enumBufferSize), &devIds[0], &devCount)
		collect(devCount, GpuDevice)

		for _, dev := range info.Devices {
			if err := dev.detectSpeed(); err != nil {
				return nil, err
			}
		}
	}

	return infoList, nil
}

// SelectDevices scans all platforms and returns the devices matching
// the given selection query.
func SelectDevices(typeMask DeviceType, matchName string) ([]*Device, error) {
	platforms, err := GetPlatformInfo()
	if err != nil {
		return nil, err
	}

	list := make([]*Device, 0)
	for _, p := range platforms {
		for _, d := range p.Devices {
			if matchDevice(d, typeMask, matchName) {
				list = append(list, d)
			}
		}
	}
	return list, nil
}

// matchDevice reports whether a device satisfies a type mask plus an
// optional name substring.
func matchDevice(d *Device, typeMask DeviceType, matchName string) bool {
	if d.Type&typeMask != d.Type {
		return false
	}
	return matchName == "" || strings.Contains(d.Name, matchName)
}
