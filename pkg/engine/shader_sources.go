package engine

// Shader sources for the CRT screen renderer

// Vertex shader for the full-screen quad
const screenVertexShaderSource = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;

out vec2 TexCoord;

void main() {
    gl_Position = vec4(aPos, 1.0);
    TexCoord = aTexCoord;
}
`

// Fragment shader applying barrel distortion and CRT effects to the
// text surface texture
const screenFragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
out vec4 FragColor;

uniform sampler2D textTexture;
uniform float time;
uniform float distortion;
uniform float zoom;
uniform float noiseAmount;
uniform float scanlineIntensity;
uniform float vignetteAmount;
uniform vec2 resolution;
uniform vec3 fgColor;
uniform vec3 bgColor;

// Pseudo-random noise function
float rand(vec2 co) {
    return fract(sin(dot(co.xy, vec2(12.9898, 78.233))) * 43758.5453);
}

// Simple value noise
float noise(vec2 p) {
    vec2 ip = floor(p);
    vec2 u = fract(p);
    u = u * u * (3.0 - 2.0 * u);

    float res = mix(
        mix(rand(ip), rand(ip + vec2(1.0, 0.0)), u.x),
        mix(rand(ip + vec2(0.0, 1.0)), rand(ip + vec2(1.0, 1.0)), u.x),
        u.y);
    return res * res;
}

// Barrel distortion: displacement grows with the square of the
// distance from center, so the center is a fixed point
vec2 barrel(vec2 uv) {
    vec2 d = uv - vec2(0.5);
    float r2 = dot(d, d);
    return vec2(0.5) + d * (1.0 + distortion * r2) / zoom;
}

void main() {
    vec2 uv = barrel(TexCoord);

    // Outside the tube face there is only the backing glass
    if (uv.x < 0.0 || uv.x > 1.0 || uv.y < 0.0 || uv.y > 1.0) {
        FragColor = vec4(bgColor * 0.4, 1.0);
        return;
    }

    // The text surface is a coverage mask; tint it
    float mask = texture(textTexture, uv).a;
    vec3 color = mix(bgColor, fgColor, mask);

    // Scanlines: periodic per-row darkening
    if (scanlineIntensity > 0.0) {
        float scan = sin(uv.y * resolution.y * 3.14159265);
        color *= 1.0 - scanlineIntensity * 0.5 * (1.0 + scan);
    }

    // Film noise
    if (noiseAmount > 0.0) {
        float n = noise(uv * resolution * 0.25 + vec2(time * 60.0));
        color += (n - 0.5) * noiseAmount;
    }

    // Vignette
    float dist = length(uv - vec2(0.5)) * 2.0;
    color *= 1.0 - dist * dist * vignetteAmount;

    FragColor = vec4(color, 1.0);
}
`
