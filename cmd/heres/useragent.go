package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/host"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// userAgent identifies the tool and the host platform to the API, e.g.
// "heres/1.2.0 (linux; ubuntu 24.04; x86_64)".
func userAgent(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	info, err := host.InfoWithContext(ctx)
	if err != nil || info.Platform == "" {
		return fmt.Sprintf("%s/%s (%s; %s)", appName, version, runtime.GOOS, runtime.GOARCH)
	}
	return fmt.Sprintf("%s/%s (%s; %s %s; %s)", appName, version, info.OS, info.Platform, info.PlatformVersion, info.KernelArch)
}
