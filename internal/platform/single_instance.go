package platform

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"time"
)

// Commands understood by the control channel.
const (
	CommandStartBreak = "start-break"
	CommandPing       = "ping"
)

var (
	// ErrAlreadyRunning indicates another instance already holds the lock.
	ErrAlreadyRunning = errors.New("instance already running")
	// ErrNotRunning indicates no instance is listening for commands.
	ErrNotRunning = errors.New("no running instance")
	// ErrUnknownCommand is returned by handlers for commands they do not serve.
	ErrUnknownCommand = errors.New("unknown command")
)

const (
	replyOK        = "ok"
	replyErrPrefix = "error: "
	ioTimeout      = 2 * time.Second
)

// InstanceGuard holds the single-instance lock. The bound port doubles as the
// control channel for commands sent by SendCommand.
type InstanceGuard struct {
	listener net.Listener
	address  string
}

// AcquireSingleInstance attempts to bind a deterministic localhost port.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := addressFor(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

// Serve answers control commands until ctx is done or the guard is released.
// Each command line is passed to handle and its error is reported to the sender.
func (guard *InstanceGuard) Serve(ctx context.Context, handle func(command string) error) error {
	go func() {
		<-ctx.Done()
		_ = guard.listener.Close()
	}()

	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept control connection: %w", err)
		}
		go serveConn(conn, handle)
	}
}

func serveConn(conn net.Conn, handle func(command string) error) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(ioTimeout))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return
	}

	reply := replyOK
	command := strings.TrimSpace(line)
	if command != CommandPing {
		if err := handle(command); err != nil {
			reply = replyErrPrefix + err.Error()
		}
	}
	_, _ = fmt.Fprintln(conn, reply)
}

// SendCommand delivers command to the running instance of appName.
func SendCommand(appName, command string) error {
	conn, err := net.DialTimeout("tcp", addressFor(appName), ioTimeout)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotRunning, err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(ioTimeout))

	if _, err := fmt.Fprintln(conn, command); err != nil {
		return fmt.Errorf("send %s: %w", command, err)
	}
	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return fmt.Errorf("read %s reply: %w", command, err)
	}
	reply = strings.TrimSpace(reply)
	if reply != replyOK {
		return fmt.Errorf("%s: %s", command, strings.TrimPrefix(reply, replyErrPrefix))
	}
	return nil
}

func addressFor(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
