package sys

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"
)

// PIDFile is the lock file that keeps a single bot instance per working directory.
const PIDFile = ".bot.pid"

// AcquirePIDLock takes an exclusive flock on path, terminating whichever
// process currently holds it, and writes our PID. The returned func unlocks
// and removes the file.
func AcquirePIDLock(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf(MsgBotPIDOpenFail, err)
	}

	for {
		err = syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if err == nil {
			break
		}

		if !errors.Is(err, syscall.EWOULDBLOCK) {
			_ = f.Close()
			return nil, fmt.Errorf(MsgBotPIDLockFail, err)
		}

		// Held by another process. Read its PID and stop it.
		var oldPid int
		_, _ = f.Seek(0, 0)
		if _, scanErr := fmt.Fscanf(f, "%d", &oldPid); scanErr != nil {
			// Locked but empty: the holder is still writing.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		if oldPid == os.Getpid() {
			break
		}

		terminate(oldPid)
	}

	_ = f.Truncate(0)
	_, _ = f.Seek(0, 0)
	if _, err := fmt.Fprintf(f, "%d", os.Getpid()); err != nil {
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
		_ = f.Close()
		return nil, fmt.Errorf(MsgBotPIDWriteFail, err)
	}
	_ = f.Sync()

	release := func() {
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
		_ = f.Close()
		_ = os.Remove(path)
	}
	return release, nil
}

// terminate sends SIGTERM, waits up to five seconds, then escalates to SIGKILL.
func terminate(pid int) {
	process, err := os.FindProcess(pid)
	if err != nil {
		time.Sleep(100 * time.Millisecond)
		return
	}

	LogInfo(MsgBotKillingOld, pid)
	_ = process.Signal(syscall.SIGTERM)

	for i := 0; i < 50; i++ {
		if err := process.Signal(syscall.Signal(0)); err != nil {
			LogInfo(MsgBotOldTerminated)
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	LogWarn(MsgBotStubborn, pid)
	_ = process.Signal(syscall.SIGKILL)
	time.Sleep(200 * time.Millisecond)
	LogInfo(MsgBotOldTerminated)
}
