package device

import "testing"

func TestMatchDevice(t *testing.T) {
	specs := []struct {
		devName   string
		devType   DeviceType
		typeMask  DeviceType
		matchName string
		exp       bool
	}{
		{"GeForce GTX 970", GpuDevice, AllDevices, "", true},
		{"GeForce GTX 970", GpuDevice, GpuDevice, "", true},
		{"GeForce GTX 970", GpuDevice, CpuDevice, "", false},
		{"Intel Core i7", CpuDevice, GpuDevice | CpuDevice, "Intel", true},
		{"Intel Core i7", CpuDevice, AllDevices, "AMD", false},
		{"Intel Core i7", OtherDevice, CpuDevice, "", false},
	}

	for idx, spec := range specs {
		d := &Device{Name: spec.devName, Type: spec.devType}
		if got := matchDevice(d, spec.typeMask, spec.matchName); got != spec.exp {
			t.Errorf("[spec %d] expected match(%q, %q) to be %t", idx, spec.devName, spec.matchName, spec.exp)
		}
	}
}
