package engine

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLRenderer draws the text surface through the CRT shader using OpenGL
type GLRenderer struct {
	width  int
	height int

	quadVAO       uint32
	quadVBO       uint32
	elementBuffer uint32
	shaderProgram uint32
	textTexture   uint32

	surfaceWidth  int
	surfaceHeight int

	// Shader uniform locations
	timeLocation       int32
	distortionLocation int32
	zoomLocation       int32
	noiseLocation      int32
	scanlineLocation   int32
	vignetteLocation   int32
	resolutionLocation int32
	fgColorLocation    int32
	bgColorLocation    int32

	// Thread safety
	mutex sync.Mutex
}

// NewGLRenderer creates the OpenGL renderer. A current GL context is
// required.
func NewGLRenderer(width, height int) (*GLRenderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %v", err)
	}

	r := &GLRenderer{
		width:  width,
		height: height,
	}

	if err := r.initOpenGL(); err != nil {
		return nil, err
	}

	return r, nil
}

// initOpenGL initializes OpenGL resources
func (r *GLRenderer) initOpenGL() error {
	gl.Disable(gl.DEPTH_TEST)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)

	var err error
	if r.shaderProgram, err = createShaderProgram(screenVertexShaderSource, screenFragmentShaderSource); err != nil {
		return err
	}

	// Cache uniform locations
	gl.UseProgram(r.shaderProgram)
	r.timeLocation = gl.GetUniformLocation(r.shaderProgram, gl.Str("time\x00"))
	r.distortionLocation = gl.GetUniformLocation(r.shaderProgram, gl.Str("distortion\x00"))
	r.zoomLocation = gl.GetUniformLocation(r.shaderProgram, gl.Str("zoom\x00"))
	r.noiseLocation = gl.GetUniformLocation(r.shaderProgram, gl.Str("noiseAmount\x00"))
	r.scanlineLocation = gl.GetUniformLocation(r.shaderProgram, gl.Str("scanlineIntensity\x00"))
	r.vignetteLocation = gl.GetUniformLocation(r.shaderProgram, gl.Str("vignetteAmount\x00"))
	r.resolutionLocation = gl.GetUniformLocation(r.shaderProgram, gl.Str("resolution\x00"))
	r.fgColorLocation = gl.GetUniformLocation(r.shaderProgram, gl.Str("fgColor\x00"))
	r.bgColorLocation = gl.GetUniformLocation(r.shaderProgram, gl.Str("bgColor\x00"))

	r.setupScreenQuad()
	r.createTextTexture()

	return nil
}

// setupScreenQuad creates the fixed two-triangle full-screen quad
func (r *GLRenderer) setupScreenQuad() {
	vertices := []float32{
		// Positions   // Texture coords
		-1.0, -1.0, 0.0, 0.0, 1.0, // Bottom left
		1.0, -1.0, 0.0, 1.0, 1.0, // Bottom right
		1.0, 1.0, 0.0, 1.0, 0.0, // Top right
		-1.0, 1.0, 0.0, 0.0, 0.0, // Top left
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.elementBuffer)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.elementBuffer)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	// Position attribute
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	// Texture coord attribute
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// createTextTexture allocates the texture object the text surface is
// uploaded into
func (r *GLRenderer) createTextTexture() {
	gl.GenTextures(1, &r.textTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.textTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// UploadSurface copies the rasterized text surface into the texture
func (r *GLRenderer) UploadSurface(img *image.RGBA) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	gl.BindTexture(gl.TEXTURE_2D, r.textTexture)
	if w == r.surfaceWidth && h == r.surfaceHeight {
		// Same size, cheaper in-place update
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		r.surfaceWidth = w
		r.surfaceHeight = h
	}
}

// Render draws one frame through the CRT shader
func (r *GLRenderer) Render(params EffectParams, elapsed float32) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(r.shaderProgram)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.textTexture)
	gl.Uniform1i(gl.GetUniformLocation(r.shaderProgram, gl.Str("textTexture\x00")), 0)

	gl.Uniform1f(r.timeLocation, elapsed)
	gl.Uniform1f(r.distortionLocation, params.Distortion)
	gl.Uniform1f(r.zoomLocation, params.Zoom)
	gl.Uniform1f(r.noiseLocation, params.Noise)
	gl.Uniform1f(r.scanlineLocation, params.Scanlines)
	gl.Uniform1f(r.vignetteLocation, params.Vignette)
	gl.Uniform2f(r.resolutionLocation, float32(r.width), float32(r.height))
	gl.Uniform3f(r.fgColorLocation, params.Foreground[0], params.Foreground[1], params.Foreground[2])
	gl.Uniform3f(r.bgColorLocation, params.Background[0], params.Background[1], params.Background[2])

	gl.BindVertexArray(r.quadVAO)
	gl.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// UpdateResolution updates the renderer resolution
func (r *GLRenderer) UpdateResolution(width, height int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.width = width
	r.height = height
}

// Close releases all OpenGL resources
func (r *GLRenderer) Close() {
	gl.DeleteVertexArrays(1, &r.quadVAO)
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteBuffers(1, &r.elementBuffer)
	gl.DeleteTextures(1, &r.textTexture)
	gl.DeleteProgram(r.shaderProgram)
}

// createShaderProgram compiles and links a shader program from source
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// Check for linking errors
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))

		gl.DeleteProgram(program)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)

		return 0, fmt.Errorf("shader program linking failed: %v", infoLog)
	}

	// Shaders are linked into the program now
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

// compileShader compiles a shader from source
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	// Check for compilation errors
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))

		gl.DeleteShader(shader)

		return 0, fmt.Errorf("shader compilation failed: %v", infoLog)
	}

	return shader, nil
}
