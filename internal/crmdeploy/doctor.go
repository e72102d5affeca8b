package crmdeploy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
)

// CheckResult is one preflight check outcome. A failed check is a warning,
// never a hard stop: doctor informs, deploy decides.
type CheckResult struct {
	Name string
	Err  error
}

func (r CheckResult) OK() bool {
	return r.Err == nil
}

// RunChecks runs the preflight checks for the given config.
func RunChecks(ctx context.Context, exec Executor, cfg Config) []CheckResult {
	checks := []struct {
		name string
		fn   func() error
	}{
		{cfg.Python + " binary", func() error {
			_, err := exec.LookPath(cfg.Python)
			return err
		}},
		{"venv module", func() error {
			_, err := exec.Capture(ctx, "", cfg.Python, "-m", "venv", "-h")
			return err
		}},
		{"systemctl binary", func() error {
			_, err := exec.LookPath("systemctl")
			return err
		}},
		{"nginx binary", func() error {
			_, err := exec.LookPath("nginx")
			return err
		}},
		{"pg_dump binary", func() error {
			_, err := exec.LookPath("pg_dump")
			return err
		}},
		{"project dir", func() error {
			if !DirExists(cfg.ProjectDir) {
				return fmt.Errorf("%s does not exist", cfg.ProjectDir)
			}
			return nil
		}},
		{"requirements file", func() error {
			req := cfg.Requirements
			if !filepath.IsAbs(req) {
				req = filepath.Join(cfg.ProjectDir, req)
			}
			if _, err := os.Stat(req); err != nil {
				return err
			}
			return nil
		}},
		{"manage.py present", func() error {
			if _, err := os.Stat(filepath.Join(cfg.ProjectDir, "manage.py")); err != nil {
				return err
			}
			return nil
		}},
		{"socket dir creatable", func() error {
			dir := filepath.Dir(cfg.SocketPath)
			if DirExists(dir) {
				return nil
			}
			// systemd creates the runtime dir itself; its parent must exist.
			if !DirExists(filepath.Dir(dir)) {
				return fmt.Errorf("neither %s nor %s exists", dir, filepath.Dir(dir))
			}
			return nil
		}},
		{SystemdDir() + " writable", func() error {
			return writableCheck(SystemdDir())
		}},
		{NginxAvailableDir() + " writable", func() error {
			return writableCheck(NginxAvailableDir())
		}},
		{"disk space >= 1GiB on project dir", func() error {
			return diskCheck(cfg.ProjectDir, 1)
		}},
	}

	results := make([]CheckResult, 0, len(checks))
	for _, check := range checks {
		results = append(results, CheckResult{Name: check.name, Err: check.fn()})
	}
	return results
}

// Doctor prints the checks the way an operator reads them.
func Doctor(ctx context.Context, exec Executor, cfg Config) {
	fmt.Println("crmdeploy doctor")
	fmt.Printf("runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	for _, r := range RunChecks(ctx, exec, cfg) {
		if r.OK() {
			fmt.Printf("[ OK ] %s\n", r.Name)
		} else {
			fmt.Printf("[WARN] %s: %v\n", r.Name, r.Err)
		}
	}
}

func writableCheck(dir string) error {
	if !DirExists(dir) {
		return fmt.Errorf("%s does not exist", dir)
	}
	f, err := os.CreateTemp(dir, "crmdeploy-write-check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}

func diskCheck(path string, minGiB uint64) error {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return err
	}
	free := (stat.Bavail * uint64(stat.Bsize)) / (1024 * 1024 * 1024)
	if free < minGiB {
		return fmt.Errorf("free space %dGiB < %dGiB", free, minGiB)
	}
	return nil
}
