package renderer

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// DefaultWorkerCount returns the number of logical cores, falling back to
// the Go runtime's count when the host cannot be queried
func DefaultWorkerCount() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// HostDescription names the CPU the render runs on and, when known, the
// installed memory
func HostDescription() string {
	model := fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 && infos[0].ModelName != "" {
		model = infos[0].ModelName
	}

	desc := fmt.Sprintf("%s, %d logical cores", model, DefaultWorkerCount())
	if vm, err := mem.VirtualMemory(); err == nil && vm.Total > 0 {
		desc += fmt.Sprintf(", %.1f GiB RAM", float64(vm.Total)/(1<<30))
	}
	return desc
}
