package learn

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

const (
	// MaxShaderSize is the largest shader source accepted, in bytes.
	MaxShaderSize = 0x2000
	// InfoLogSize bounds compile and link diagnostics, in bytes.
	InfoLogSize = 512
)

var (
	ErrShaderRead    = errors.New("opening or reading shaders failed")
	ErrShaderCompile = errors.New("shader compilation failed")
	ErrProgramLink   = errors.New("shader program linkage failed")
)

// ShaderBuilder reads a vertex/fragment source pair and links it into a
// program on a Device.
type ShaderBuilder struct {
	device  Device
	fsys    fs.FS
	logger  *slog.Logger
	maxSize int
	logSize int
}

// ShaderOption configures a ShaderBuilder.
type ShaderOption func(*ShaderBuilder)

// WithShaderFS sets the file system shader paths are resolved in.
func WithShaderFS(fsys fs.FS) ShaderOption {
	return func(b *ShaderBuilder) { b.fsys = fsys }
}

// WithShaderLogger sets the logger diagnostics are written to.
func WithShaderLogger(logger *slog.Logger) ShaderOption {
	return func(b *ShaderBuilder) { b.logger = logger }
}

// WithMaxShaderSize overrides MaxShaderSize.
func WithMaxShaderSize(n int) ShaderOption {
	return func(b *ShaderBuilder) { b.maxSize = n }
}

// WithInfoLogSize overrides InfoLogSize.
func WithInfoLogSize(n int) ShaderOption {
	return func(b *ShaderBuilder) { b.logSize = n }
}

// NewShaderBuilder creates a builder for dev. Paths are resolved relative
// to the working directory unless WithShaderFS is given.
func NewShaderBuilder(dev Device, opts ...ShaderOption) *ShaderBuilder {
	b := &ShaderBuilder{
		device:  dev,
		fsys:    os.DirFS("."),
		logger:  defaultLogger,
		maxSize: MaxShaderSize,
		logSize: InfoLogSize,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build reads both sources, compiles them and links the program.
// Intermediate stage objects are deleted whether or not it succeeds.
func (b *ShaderBuilder) Build(vertexPath, fragmentPath string) (uint32, error) {
	vertexSource, err := b.readSource(vertexPath)
	if err != nil {
		return 0, err
	}
	fragmentSource, err := b.readSource(fragmentPath)
	if err != nil {
		return 0, err
	}

	vertexShader, err := b.compile(StageVertex, vertexSource)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := b.compile(StageFragment, fragmentSource)
	if err != nil {
		b.device.DeleteShader(vertexShader)
		return 0, err
	}

	program := b.device.CreateProgram()
	b.device.AttachShader(program, vertexShader)
	b.device.AttachShader(program, fragmentShader)
	b.device.LinkProgram(program)

	// Stages are owned by the program once linked (or useless if not).
	b.device.DeleteShader(vertexShader)
	b.device.DeleteShader(fragmentShader)

	if !b.device.ProgramLinked(program) {
		diag := diagnostic(b.device.ProgramInfoLog(program, b.logSize))
		b.device.DeleteProgram(program)
		b.logger.Error("shader program linkage failed", "vertex", vertexPath, "fragment", fragmentPath, "log", diag)
		return 0, fmt.Errorf("%w: %s", ErrProgramLink, diag)
	}

	b.logger.Debug("shader program linked", "program", program, "vertex", vertexPath, "fragment", fragmentPath)
	return program, nil
}

func (b *ShaderBuilder) readSource(path string) (string, error) {
	f, err := b.fsys.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrShaderRead, err)
	}
	defer f.Close()

	// One byte past the limit tells an oversize file from one that fits.
	data, err := io.ReadAll(io.LimitReader(f, int64(b.maxSize)+1))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrShaderRead, path, err)
	}
	if len(data) > b.maxSize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrShaderRead, path, b.maxSize)
	}

	return string(data), nil
}

func (b *ShaderBuilder) compile(stage ShaderStage, source string) (uint32, error) {
	shader := b.device.CreateShader(stage)
	b.device.ShaderSource(shader, source)
	b.device.CompileShader(shader)

	if !b.device.ShaderCompiled(shader) {
		diag := diagnostic(b.device.ShaderInfoLog(shader, b.logSize))
		b.device.DeleteShader(shader)
		b.logger.Error("shader compilation failed", "stage", stage, "log", diag)
		return 0, fmt.Errorf("%w: %s shader: %s", ErrShaderCompile, stage, diag)
	}

	return shader, nil
}

// diagnostic normalizes a driver info log for reporting.
func diagnostic(log string) string {
	log = strings.TrimRight(log, "\x00 \t\r\n")
	if log == "" {
		return "no diagnostic from driver"
	}
	return log
}
