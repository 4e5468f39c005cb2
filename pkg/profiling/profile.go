package profiling

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime/pprof"
	"runtime/trace"
	"time"
)

// EnableProfiling writes CPU, memory and trace profiles under ./prof for
// the given duration, then stops on its own.
func EnableProfiling(stopTime time.Duration) {
	slog.Info("profiling enabled")

	dir := "prof"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Error("failed to create profiling directory", "err", err)
		return
	}

	cf, err := os.Create(filepath.Join(dir, "cpu.prof"))
	if err != nil {
		slog.Error("failed to start CPU profiling", "error", err)
	}
	pprof.StartCPUProfile(cf)

	mf, err := os.Create(filepath.Join(dir, "memory.prof"))
	if err != nil {
		slog.Error("failed to start memory profiling", "error", err)
	}
	pprof.WriteHeapProfile(mf)

	tc, err := os.Create(filepath.Join(dir, "trace.prof"))
	if err != nil {
		slog.Error("failed to start trace profiling", "error", err)
	}
	trace.Start(tc)

	stop := time.After(stopTime)

	go func() {
		<-stop
		pprof.StopCPUProfile()
		trace.Stop()
		cf.Close()
		mf.Close()
		tc.Close()
		slog.Info("finished the profiling")
	}()
}
